package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/KenseiEmam/infinity-maintenance-backend/utils"
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	inviteTokenTTL = 24 * time.Hour
	resetTokenTTL  = 15 * time.Minute
	tokenBytes     = 32
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// RegisterFirstAdmin creates the bootstrap admin account. It succeeds
// exactly once: any call after a user exists is forbidden, regardless of
// payload.
func (c *UserController) RegisterFirstAdmin(ctx *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	}

	var count int64
	if err := c.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if count > 0 {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	admin := models.User{
		Email:    input.Email,
		Name:     input.Name,
		Role:     models.RoleAdmin,
		Password: string(hashed),
	}
	if err := c.DB.Create(&admin).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": admin, "message": "Admin created"})
}

// InviteUser creates an invited account holding a single-use setup token
// and queues the invite email. User row and email intent commit together.
func (c *UserController) InviteUser(ctx *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name" validate:"required"`
		Role  string `json:"role" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	var existing models.User
	err := c.DB.Where("LOWER(email) = ?", strings.ToLower(input.Email)).First(&existing).Error
	if err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := utils.GenerateToken(tokenBytes)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	expiry := time.Now().Add(inviteTokenTTL)

	user := models.User{
		Email:             input.Email,
		Name:              input.Name,
		Role:              input.Role,
		InviteToken:       &token,
		InviteTokenExpiry: &expiry,
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		setupURL := fmt.Sprintf("%s/setup-password?token=%s&id=%s", config.FrontendURL, token, user.ID)
		return services.EnqueueEmail(tx, services.Email{
			To:      user.Email,
			Subject: "You have been invited to the Maintenance System",
			HTML: fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>An administrator has created an account for you.</p>
        <p>Please click the link below to set your password:</p>
        <p>
          <a href="%s">Set your password</a>
        </p>
        <p>This link expires in 24 hours.</p>
        <p>- Maintenance System</p>
      `, user.Name, setupURL),
		})
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User invited successfully"})
}

// SetupPassword consumes the invite token and activates the account.
func (c *UserController) SetupPassword(ctx *fiber.Ctx) error {
	var input struct {
		UserID   string `json:"userId"`
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.UserID == "" || input.Token == "" || input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	}

	var user models.User
	err := c.DB.First(&user, "id = ?", input.UserID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil ||
		user.InviteToken == nil || *user.InviteToken != input.Token ||
		user.InviteTokenExpiry == nil || user.InviteTokenExpiry.Before(time.Now()) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired invite link"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&user).Updates(map[string]interface{}{
		"password":            string(hashed),
		"invite_token":        nil,
		"invite_token_expiry": nil,
	}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Password set successfully"})
}

// Login checks the credentials and issues the signed session token.
// An account that never set a password is forbidden, not unauthorized.
func (c *UserController) Login(ctx *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Email == "" || input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	var user models.User
	if err := c.DB.Where("LOWER(email) = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if user.Password == "" {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "User has not set a password yet"})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Duration(config.JWTExpiration) * time.Second).Unix(),
		"jti":     uuid.NewString(),
	})
	tokenString, err := token.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"user": user, "token": tokenString})
}

// ForgotPassword issues a reset token and queues the reset email.
func (c *UserController) ForgotPassword(ctx *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Email == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}

	var user models.User
	if err := c.DB.Where("LOWER(email) = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := utils.GenerateToken(tokenBytes)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	expiry := time.Now().Add(resetTokenTTL)

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		}).Error; err != nil {
			return err
		}

		resetURL := fmt.Sprintf("%s/reset-password?token=%s&id=%s", config.FrontendURL, token, user.ID)
		return services.EnqueueEmail(tx, services.Email{
			To:      user.Email,
			Subject: "Password Reset Request",
			HTML: fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>You requested a password reset.</p>
        <p><a href="%s">Reset Password</a></p>
        <p>This link expires in 15 minutes.</p>
      `, user.Name, resetURL),
		})
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// ResetPassword consumes the reset token.
func (c *UserController) ResetPassword(ctx *fiber.Ctx) error {
	var input struct {
		UserID      string `json:"userId"`
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.UserID == "" || input.Token == "" || input.NewPassword == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	}

	var user models.User
	err := c.DB.First(&user, "id = ?", input.UserID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil ||
		user.ResetToken == nil || *user.ResetToken != input.Token ||
		user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(time.Now()) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired reset link"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&user).Updates(map[string]interface{}{
		"password":           string(hashed),
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Password set successfully"})
}

func (c *UserController) UpdateUser(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var input struct {
		Email *string `json:"email"`
		Name  *string `json:"name"`
		Role  *string `json:"role"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := c.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if len(updates) > 0 {
		if err := c.DB.Model(&user).Updates(updates).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(user)
}

func (c *UserController) GetUserByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var user models.User
	if err := c.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(user)
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	offset, limit := utils.Pagination(ctx)

	query := c.DB.Model(&models.User{})
	if role := ctx.Query("role"); role != "" {
		query = query.Where("role IN ?", strings.Split(role, ","))
	}
	if name := ctx.Query("name"); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var users []models.User
	if err := query.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"users": users, "count": count})
}

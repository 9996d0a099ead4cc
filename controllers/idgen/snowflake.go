package idgen

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// NextSheetNo returns the next human-readable job-sheet number.
func NextSheetNo() string {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic("idgen: failed to init snowflake node: " + err.Error())
		}
	})
	return "JS-" + node.Generate().String()
}

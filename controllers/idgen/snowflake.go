package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init sets the snowflake node number. It must run before the first
// GenerateID call to take effect; later calls are ignored.
func Init(nodeNumber int64) error {
	var err error
	nodeOnce.Do(func() {
		node, err = snowflake.NewNode(nodeNumber)
	})
	if err != nil {
		return fmt.Errorf("init snowflake node %d: %w", nodeNumber, err)
	}
	return nil
}

func GenerateID() int64 {
	nodeOnce.Do(func() {
		// node 1 is always valid
		node, _ = snowflake.NewNode(1)
	})
	return node.Generate().Int64()
}

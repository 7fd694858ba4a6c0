package dbaccess

import (
	"github.com/pkg/errors"

	"github.com/eramoss/ghostdagsim/blockdag"
)

// ArchiveDAG stores every accepted block of the given DAG along with
// its GHOSTDAG total order. Blocks are written in ordering sequence;
// since ids are allocated after all parents exist, replaying the
// archive in ascending id order reconstructs the DAG without orphaning
// a single block.
func ArchiveDAG(context *DatabaseContext, dag *blockdag.BlockDAG) error {
	ordering := dag.ComputeOrdering()
	for _, blockID := range ordering {
		block, ok := dag.BlockByID(blockID)
		if !ok {
			return errors.Errorf("ordering refers to block %d which is not in the DAG", blockID)
		}
		err := StoreBlock(context, block)
		if err != nil {
			return err
		}
	}

	err := StoreOrdering(context, ordering)
	if err != nil {
		return err
	}

	log.Infof("Archived %d blocks", len(ordering))
	return nil
}

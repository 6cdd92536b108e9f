package synchronizer

import "github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"

// confirmations counts the block itself, a block at the head has one.
func confirmations(block model.BlockHeader, head model.BlockHeader) uint64 {
	if head.Height < block.Height {
		return 1
	}
	return head.Height - block.Height + 1
}

func trustOf(block *model.BlockHeader, head model.BlockHeader, toTrust uint64) model.TrustLevel {
	if block == nil {
		return model.TrustPending
	}
	if confirmations(*block, head) >= toTrust {
		return model.TrustTrusted
	}
	return model.TrustUntrusted
}

// promoteUpTo is the highest height whose operations are trusted at head, nil when none is.
func promoteUpTo(head model.BlockHeader, toTrust uint64) *uint64 {
	if head.Height+1 < toTrust {
		return nil
	}
	height := head.Height + 1 - toTrust
	return &height
}

// Package uid derives deterministic, content-addressed operation identifiers.
//
// A uid is the hex encoded SHA-256 of its components, each written as a Bitcoin
// var-string (var-int length prefix followed by the UTF-8 bytes). Length prefixes make the
// encoding injective: "txHash1"+"0" and "txHash10" produce different preimages. The format
// is shared by every process writing to the same operation store and must not change.
package uid

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// messageTag separates message-scoped uids from transaction-scoped ones.
const messageTag = "msg"

// Derive returns the uid of an operation of opType produced by the transaction identified by
// txIdentity on the given account.
func Derive(accountUID, txIdentity string, opType model.OperationType) string {
	var buf bytes.Buffer
	writeComponents(&buf, accountUID, txIdentity, string(opType))
	return hex.EncodeToString(chainhash.HashB(buf.Bytes()))
}

// DeriveMessage returns the uid of the effect of one message (transfer, output) inside a
// transaction carrying several of them.
func DeriveMessage(accountUID, txHash string, index uint32, opType model.OperationType) string {
	var buf bytes.Buffer
	writeComponents(&buf, accountUID, txHash, string(opType), messageTag)

	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], index)
	buf.Write(idx[:])

	return hex.EncodeToString(chainhash.HashB(buf.Bytes()))
}

// Assign sets op.UID from the operation's account, transaction and type.
func Assign(op *model.Operation) {
	if op.MessageIndex != nil {
		op.UID = DeriveMessage(op.AccountUID, op.TxHash, *op.MessageIndex, op.Type)
		return
	}
	op.UID = Derive(op.AccountUID, op.TxHash, op.Type)
}

func writeComponents(buf *bytes.Buffer, components ...string) {
	for _, c := range components {
		// bytes.Buffer writes never fail.
		_ = wire.WriteVarString(buf, 0, c)
	}
}

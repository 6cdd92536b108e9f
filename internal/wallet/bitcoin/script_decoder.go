package bitcoin

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// scriptDecoder extracts the address paid by an output script.
type scriptDecoder struct {
	params *chaincfg.Params
}

// address returns the single address an output pays to, empty for bare multisig, data
// carriers and non standard scripts.
func (d scriptDecoder) address(pk btcjson.ScriptPubKeyResult) (string, error) {
	if pk.Address != "" {
		return pk.Address, nil
	}
	if len(pk.Addresses) == 1 {
		return pk.Addresses[0], nil
	}
	if pk.Hex == "" {
		return "", nil
	}

	script, err := hex.DecodeString(pk.Hex)
	if err != nil {
		return "", err
	}
	_, addrs, required, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return "", err
	}
	if len(addrs) != 1 || required > 1 {
		return "", nil
	}
	return addrs[0].EncodeAddress(), nil
}

package transport

import (
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/picker"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/service"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/utxocache"
)

// Amounts travel as decimal strings of the smallest unit.

type accountsResponse struct {
	Accounts []string `json:"accounts"`
}

type cursorResponse struct {
	Height       uint64    `json:"height"`
	Hash         string    `json:"hash"`
	RemoteHeight uint64    `json:"remote_height"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newCursorResponse(c model.SyncCursor) cursorResponse {
	return cursorResponse{
		Height:       c.Height,
		Hash:         c.Hash,
		RemoteHeight: c.RemoteHeight,
		UpdatedAt:    c.UpdatedAt,
	}
}

type statusResponse struct {
	Account       string         `json:"account"`
	Addresses     []string       `json:"addresses"`
	LowestHeight  uint64         `json:"lowest_height"`
	Synced        bool           `json:"synced"`
	Synchronizing bool           `json:"synchronizing"`
	Cursor        cursorResponse `json:"cursor"`
}

func newStatusResponse(s service.Status) statusResponse {
	return statusResponse{
		Account:       s.AccountUID,
		Addresses:     s.Addresses,
		LowestHeight:  s.LowestHeight,
		Synced:        s.Synced,
		Synchronizing: s.Synchronizing,
		Cursor:        newCursorResponse(s.Cursor),
	}
}

type syncResponse struct {
	Cursor    cursorResponse `json:"cursor"`
	Upserted  int            `json:"upserted"`
	Deleted   int            `json:"deleted"`
	Rollbacks int            `json:"rollbacks"`
}

type operationResponse struct {
	UID          string    `json:"uid"`
	TxHash       string    `json:"tx_hash"`
	MessageIndex *uint32   `json:"message_index,omitempty"`
	Type         string    `json:"type"`
	Senders      []string  `json:"senders"`
	Recipients   []string  `json:"recipients"`
	Amount       string    `json:"amount"`
	Fees         string    `json:"fees,omitempty"`
	Date         time.Time `json:"date"`
	BlockHeight  *uint64   `json:"block_height,omitempty"`
	BlockHash    string    `json:"block_hash,omitempty"`
	Trust        string    `json:"trust"`
}

type operationsResponse struct {
	Operations []operationResponse `json:"operations"`
}

func newOperationResponse(op model.Operation) operationResponse {
	resp := operationResponse{
		UID:          op.UID,
		TxHash:       op.TxHash,
		MessageIndex: op.MessageIndex,
		Type:         string(op.Type),
		Senders:      nonNil(op.Senders),
		Recipients:   nonNil(op.Recipients),
		Amount:       amount(op.Amount),
		Date:         op.Date,
		Trust:        op.Trust.String(),
	}
	if op.Fees != nil {
		resp.Fees = op.Fees.String()
	}
	if op.Block != nil {
		height := op.Block.Height
		resp.BlockHeight = &height
		resp.BlockHash = op.Block.Hash
	}
	return resp
}

type utxoResponse struct {
	TxHash      string  `json:"tx_hash"`
	OutputIndex uint32  `json:"output_index"`
	Address     string  `json:"address"`
	Amount      string  `json:"amount"`
	BlockHeight *uint64 `json:"block_height,omitempty"`
}

func newUtxoResponse(u model.Utxo) utxoResponse {
	return utxoResponse{
		TxHash:      u.Key.TxHash,
		OutputIndex: u.Key.OutputIndex,
		Address:     u.Value.Address,
		Amount:      amount(u.Value.Amount),
		BlockHeight: u.Value.BlockHeight,
	}
}

type utxosResponse struct {
	Height  uint64         `json:"height"`
	Balance string         `json:"balance"`
	Stale   bool           `json:"stale,omitempty"`
	Utxos   []utxoResponse `json:"utxos"`
}

func newUtxosResponse(s utxocache.Snapshot, stale bool) utxosResponse {
	resp := utxosResponse{
		Height:  s.Height,
		Balance: s.Balance().String(),
		Stale:   stale,
		Utxos:   make([]utxoResponse, 0, len(s.Utxos)),
	}
	for _, u := range s.Utxos {
		resp.Utxos = append(resp.Utxos, newUtxoResponse(u))
	}
	return resp
}

type pickRequest struct {
	Amount             string   `json:"amount"`
	FeePerByte         string   `json:"fee_per_byte"`
	LongTermFeePerByte string   `json:"long_term_fee_per_byte,omitempty"`
	Outputs            int      `json:"outputs,omitempty"`
	Strategy           string   `json:"strategy,omitempty"`
	MaxUtxos           int      `json:"max_utxos,omitempty"`
	Addresses          []string `json:"addresses,omitempty"`
}

func (p pickRequest) toService() (service.PickRequest, error) {
	req := service.PickRequest{
		Outputs:   p.Outputs,
		MaxUtxos:  p.MaxUtxos,
		Addresses: p.Addresses,
	}
	var err error
	if req.Amount, err = parseAmount("amount", p.Amount); err != nil {
		return service.PickRequest{}, err
	}
	if req.FeePerByte, err = parseAmount("fee_per_byte", p.FeePerByte); err != nil {
		return service.PickRequest{}, err
	}
	if p.LongTermFeePerByte != "" {
		if req.LongTermFeePerByte, err = parseAmount("long_term_fee_per_byte", p.LongTermFeePerByte); err != nil {
			return service.PickRequest{}, err
		}
	}
	if p.Strategy != "" {
		if req.Strategy, err = picker.ParseStrategy(p.Strategy); err != nil {
			return service.PickRequest{}, err
		}
	}
	return req, nil
}

type selectionResponse struct {
	Strategy string         `json:"strategy"`
	Total    string         `json:"total"`
	Fee      string         `json:"fee"`
	Change   string         `json:"change"`
	Utxos    []utxoResponse `json:"utxos"`
}

func newSelectionResponse(s picker.Selection) selectionResponse {
	resp := selectionResponse{
		Strategy: s.Strategy.String(),
		Total:    amount(s.Total),
		Fee:      amount(s.Fee),
		Change:   amount(s.Change),
		Utxos:    make([]utxoResponse, 0, len(s.Utxos)),
	}
	for _, u := range s.Utxos {
		resp.Utxos = append(resp.Utxos, newUtxoResponse(u))
	}
	return resp
}

type broadcastRequest struct {
	RawTx string `json:"raw_tx"`
}

type broadcastResponse struct {
	Hash string `json:"hash"`
}

type resetRequest struct {
	ToDate *time.Time `json:"to_date"`
}

func parseAmount(field, value string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, badRequest("%s: %q is not a decimal amount", field, value)
	}
	return v, nil
}

func amount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

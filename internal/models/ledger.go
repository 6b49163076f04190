package models

// TransactionPayload is a fully formed entry-function call, ready to be
// handed to the external signer. Immutable once built.
type TransactionPayload struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []string `json:"arguments"` // base-unit encoded, fixed order
}

// SubmitResult is the signer's acknowledgement of an executed transaction.
type SubmitResult struct {
	TxRef string `json:"tx_ref"`
}

// RawEvent is a single typed event emitted by an on-chain transaction.
// Data values arrive as strings or numbers depending on the node's JSON
// encoding; consumers normalize through units.FromRaw.
type RawEvent struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// RawTransaction is one entry of an account's on-chain transaction log.
type RawTransaction struct {
	Hash            string     `json:"hash"`
	Success         bool       `json:"success"`
	TimestampMicros string     `json:"timestamp"` // microseconds since epoch
	Events          []RawEvent `json:"events"`
}

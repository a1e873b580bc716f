package service

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError: input ditolak sebelum transaksi dimulai; Message ditampilkan apa adanya.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Message: msg, Fields: map[string]string{field: msg}}
}

// TransactionError: transaksi storage gagal commit; tidak ada state parsial yang tersimpan.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("Failed to record contribution: %v", e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

package memory

import (
	"github.com/tinoosan/records/internal/service/command"
	"github.com/tinoosan/records/internal/service/query"
	"github.com/tinoosan/records/internal/storage"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ storage.Store  = (*Store)(nil)
	_ command.Writer = (*Store)(nil)
	_ query.Reader   = (*Store)(nil)
)

package memory

import "errors"

// ErrDuplicateID mirrors the conditional put failure of the document store.
var ErrDuplicateID = errors.New("quote id already exists")

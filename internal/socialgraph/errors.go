package socialgraph

import "errors"

var (
	ErrNotFound     = errors.New("socialgraph: player not found")
	ErrBusy         = errors.New("socialgraph: player is shared and can't be modified")
	ErrNotRemovable = errors.New("socialgraph: store reclaims players on release")
	ErrForeignLink  = errors.New("socialgraph: link belongs to another store")
)

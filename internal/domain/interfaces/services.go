package interfaces

import (
	"context"
	"io"

	domaintypes "zetra/internal/domain/types"
)

// IdentityService is the function-call API a presentation layer drives.
type IdentityService interface {
	Create(ctx context.Context, req domaintypes.CreateRequest) (domaintypes.Profile, error)
	Current(ctx context.Context) (domaintypes.Profile, bool, error)
	Recover(ctx context.Context, file io.Reader, passphrase string) (domaintypes.Profile, error)
	Copy(ctx context.Context) (domaintypes.ProfileID, error)
	Export(ctx context.Context, passphrase string) (data []byte, filename string, err error)
	Reset(ctx context.Context) error
}

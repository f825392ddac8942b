package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"zetra/internal/codec"
	"zetra/internal/crypto"
	"zetra/internal/domain"
)

const (
	// MaxDisplayNameLength is the longest display name accepted, in runes.
	MaxDisplayNameLength = 64

	// DefaultColor is used when a create request leaves the color empty.
	DefaultColor = "#0ea5ff"

	// maxImportSize bounds how much of an import file is read.
	maxImportSize = 1 << 20
)

// ErrInvalidRequest is returned when a create request fails validation.
var ErrInvalidRequest = errors.New("invalid create request")

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// KeyGenerator produces the key pair a new profile is derived from.
type KeyGenerator interface {
	GenerateKeyPair() (domain.KeyPair, error)
}

type defaultGenerator struct{}

func (defaultGenerator) GenerateKeyPair() (domain.KeyPair, error) { return crypto.GenerateKeyPair() }

// Service implements domain.IdentityService on top of a profile store.
type Service struct {
	mu    sync.Mutex
	store domain.ProfileStore
	clip  domain.Clipboard
	keys  KeyGenerator
	now   func() time.Time
	log   zerolog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now as the source of createdAt.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithKeyGenerator replaces the crypto/rand backed generator.
func WithKeyGenerator(g KeyGenerator) Option { return func(s *Service) { s.keys = g } }

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// New returns a service backed by store. clip may be nil, in which case Copy
// always reports a clipboard failure.
func New(store domain.ProfileStore, clip domain.Clipboard, opts ...Option) *Service {
	s := &Service{
		store: store,
		clip:  clip,
		keys:  defaultGenerator{},
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With().Str("component", "identity").Logger()
	return s
}

// Create generates a new identity and replaces any stored profile with it.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Profile, error) {
	name, color, err := normaliseRequest(req)
	if err != nil {
		return domain.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kp, err := s.keys.GenerateKeyPair()
	if err != nil {
		if !errors.Is(err, domain.ErrCryptoUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrCryptoUnavailable, err)
		}
		return domain.Profile{}, err
	}
	id, err := crypto.DeriveID(kp.Public)
	if err != nil {
		return domain.Profile{}, err
	}

	p := domain.Profile{
		ID:          id,
		DisplayName: name,
		Color:       color,
		CreatedAt:   s.now().UnixMilli(),
		PublicKey:   kp.Public,
		PrivateKey:  kp.Private,
		Meta:        domain.Meta{Alg: domain.AlgorithmECDSAP256, Version: domain.SchemaVersion},
	}
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}
	if err := s.store.Save(p); err != nil {
		return domain.Profile{}, err
	}
	s.log.Info().Str("id", id.String()).Msg("identity created")
	return p, nil
}

// Current returns the stored profile, if any.
func (s *Service) Current(ctx context.Context) (domain.Profile, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}

// Recover replaces the stored profile with the one in file. A nil file means
// the user dismissed the picker and nothing happens. The file is fully
// validated before the store is touched.
func (s *Service) Recover(ctx context.Context, file io.Reader, passphrase string) (domain.Profile, error) {
	if file == nil {
		return domain.Profile{}, domain.ErrCancelled
	}
	data, err := io.ReadAll(io.LimitReader(file, maxImportSize+1))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: read: %v", domain.ErrInvalidProfileFile, err)
	}
	if len(data) > maxImportSize {
		return domain.Profile{}, fmt.Errorf("%w: file larger than %d bytes", domain.ErrInvalidProfileFile, maxImportSize)
	}

	p, err := codec.Import(data, passphrase)
	crypto.Wipe(data)
	if err != nil {
		s.log.Warn().Err(err).Msg("import rejected")
		return domain.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}
	if err := s.store.Save(p); err != nil {
		return domain.Profile{}, err
	}
	ev := s.log.Info().Str("id", p.ID.String())
	if p.LegacyID != "" {
		ev = ev.Str("legacy_id", p.LegacyID)
	}
	ev.Msg("identity recovered")
	return p, nil
}

// Copy writes the stored id to the clipboard. A clipboard failure still
// returns the id alongside an error wrapping domain.ErrClipboard.
func (s *Service) Copy(ctx context.Context) (domain.ProfileID, error) {
	p, ok, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNoProfile
	}
	if s.clip == nil {
		return p.ID, fmt.Errorf("%w: no clipboard configured", domain.ErrClipboard)
	}
	if err := s.clip.WriteText(p.ID.String()); err != nil {
		return p.ID, fmt.Errorf("%w: %w", domain.ErrClipboard, err)
	}
	return p.ID, nil
}

// Export serialises the stored profile. A non-empty passphrase produces a
// sealed export.
func (s *Service) Export(ctx context.Context, passphrase string) ([]byte, string, error) {
	p, ok, err := s.Current(ctx)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", domain.ErrNoProfile
	}
	if passphrase != "" {
		return codec.ExportSealed(p, passphrase)
	}
	return codec.Export(p)
}

// Reset removes the stored profile. Resetting an empty device succeeds.
func (s *Service) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	s.log.Info().Msg("identity reset")
	return nil
}

func normaliseRequest(req domain.CreateRequest) (name, color string, err error) {
	name = strings.TrimSpace(req.DisplayName)
	if !utf8.ValidString(name) {
		return "", "", fmt.Errorf("%w: display name is not valid UTF-8", ErrInvalidRequest)
	}
	if n := utf8.RuneCountInString(name); n > MaxDisplayNameLength {
		return "", "", fmt.Errorf("%w: display name has %d characters, limit is %d", ErrInvalidRequest, n, MaxDisplayNameLength)
	}

	color = strings.TrimSpace(req.Color)
	if color == "" {
		color = DefaultColor
	}
	if !colorPattern.MatchString(color) {
		return "", "", fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidRequest, color)
	}
	return name, strings.ToLower(color), nil
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/jaevor/go-nanoid"
)

// no 0/O or 1/I, the code is typed by hand into banking apps
const referenceAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const (
	DefaultReferencePrefix = "NAPTIEN"
	DefaultReferenceLength = 6
	collisionSuffixDigits  = 4
)

type ReferenceAllocator struct {
	repo 		domain.TransactionRepository
	prefix 		string
	length 		int
	generate 	func() string
	now 		func() time.Time
	pattern 	*regexp.Regexp
}

func NewReferenceAllocator(repo domain.TransactionRepository, prefix string, length int) (*ReferenceAllocator, error) {
	if prefix == "" {
		prefix = DefaultReferencePrefix
	}
	if length <= 0 {
		length = DefaultReferenceLength
	}
	generator, err := nanoid.CustomASCII(referenceAlphabet, length)
	if err != nil {
		return nil, fmt.Errorf("init reference generator: %w", err)
	}

	prefix = strings.ToUpper(prefix)
	return &ReferenceAllocator{
		repo: repo,
		prefix: prefix,
		length: length,
		generate: generator,
		now: time.Now,
		pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(prefix) + `[-_ ]?([A-Z0-9]+)`),
	}, nil
}

// Allocate returns an unused code. One collision is retried with a time
// based suffix, a second one fails with ErrCodeAllocationFailed.
func (a *ReferenceAllocator) Allocate(ctx context.Context) (string, error) {
	code := fmt.Sprintf("%s-%s", a.prefix, a.generate())

	exists, err := a.repo.ReferenceCodeExists(ctx, code)
	if err != nil {
		return "", fmt.Errorf("check reference code: %w", err)
	}
	if !exists {
		return code, nil
	}

	suffixed := fmt.Sprintf("%s%04d", code, a.now().UnixMilli()%10000)
	slog.Warn("reference code collision", "reference_code", code, "retry", suffixed)

	exists, err = a.repo.ReferenceCodeExists(ctx, suffixed)
	if err != nil {
		return "", fmt.Errorf("check reference code: %w", err)
	}
	if exists {
		return "", domain.ErrCodeAllocationFailed
	}
	return suffixed, nil
}

// Candidates extracts the reference codes a transfer memo may carry, in
// canonical PREFIX-CODE form. Banks drop the hyphen or glue the next word to
// the code, so each hit also yields its plain and suffixed lengths.
func (a *ReferenceAllocator) Candidates(memo string) []string {
	matches := a.pattern.FindAllStringSubmatch(memo, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var candidates []string
	add := func(body string) {
		code := a.prefix + "-" + body
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		candidates = append(candidates, code)
	}

	for _, m := range matches {
		body := strings.ToUpper(m[1])
		add(body)
		if withSuffix := a.length + collisionSuffixDigits; len(body) > withSuffix {
			add(body[:withSuffix])
		}
		if len(body) > a.length {
			add(body[:a.length])
		}
	}
	return candidates
}

package testbed

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Initializers maps constant names to the values bound into contract source
// at load time. Values may be integers (any signed or unsigned Go integer
// type) or text of at most eight bytes.
type Initializers map[string]interface{}

// GuardSentinel is the fixed name keying the conditional compilation guard
// the loader injects and contract source anchors on.
const GuardSentinel = "TESTBED"

// initializerPrefix prefixes every injected constant name.
const initializerPrefix = "TESTBED_"

var guardAnchorPattern = regexp.MustCompile(`(?m)^[ \t]*#ifdef[ \t]+TESTBED\b`)

// LoadContract deploys a new contract instance from source text and makes it
// the current contract. If initializers are given, the source is first
// rewritten to bind one named constant per initializer inside a TESTBED
// guard block.
//
// The rewrite is best-effort: when the source contains no "#ifdef TESTBED"
// anchor the source is deployed unmodified and a warning is logged.
// Initializer values that cannot be expressed as literals are a hard usage
// error, reported before any compilation is attempted.
//
// Each call deploys an additional, independently addressable instance;
// loading the same source twice is how contract-to-contract scenarios are
// built.
func (t *Testbed) LoadContract(source string, initializers Initializers) (uint64, error) {
	if len(initializers) > 0 {
		injectedSource, injected, err := InjectInitializers(source, initializers)
		if err != nil {
			return 0, err
		}
		if !injected {
			t.logger.Warn().
				Str("anchor", "#ifdef "+GuardSentinel).
				Msg("initializer anchor not found; deploying source unmodified")
		}
		source = injectedSource
	}

	address, err := t.engine.DeployContract(source)
	if err != nil {
		return 0, errors.Wrap(err, "deploying contract")
	}

	t.deployed = append(t.deployed, address)
	t.current = address
	t.hasCurrent = true
	t.engine.SelectContract(address)

	t.logger.Info().
		Uint64("address", address).
		Msg("contract loaded")

	return address, nil
}

// LoadContractFile is LoadContract reading the source from a file.
func (t *Testbed) LoadContractFile(path string, initializers Initializers) (uint64, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "reading contract source %s", path)
	}
	return t.LoadContract(string(source), initializers)
}

// InjectInitializers rewrites contract source to bind named compile-time
// constants: a "#define TESTBED" line plus a guard block with one constant
// per initializer, inserted immediately above the source's first
// "#ifdef TESTBED" anchor. Constants are emitted in lexical name order so
// the rewrite is deterministic.
//
// The returned flag reports whether the anchor was found; without it the
// source is returned unchanged.
func InjectInitializers(source string, initializers Initializers) (string, bool, error) {
	names := make([]string, 0, len(initializers))
	for name := range initializers {
		names = append(names, name)
	}
	sort.Strings(names)

	var block strings.Builder
	block.WriteString("#define " + GuardSentinel + "\n")
	block.WriteString("#ifdef " + GuardSentinel + "\n")
	for _, name := range names {
		literal, err := formatLiteral(name, initializers[name])
		if err != nil {
			return "", false, err
		}
		fmt.Fprintf(&block, "  const %s%s = %s;\n", initializerPrefix, name, literal)
	}
	block.WriteString("#endif\n")

	loc := guardAnchorPattern.FindStringIndex(source)
	if loc == nil {
		return source, false, nil
	}

	return source[:loc[0]] + block.String() + source[loc[0]:], true, nil
}

// formatLiteral renders an initializer value as a SmartC literal: integers
// unquoted, text quoted. Text longer than eight bytes does not fit a memory
// cell and is a usage error.
func formatLiteral(name string, value interface{}) (string, error) {
	switch v := value.(type) {
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case string:
		if len(v) > 8 {
			return "", &InitializerValueError{
				Name:   name,
				Reason: fmt.Sprintf("text value %q exceeds 8 characters", v),
			}
		}
		return strconv.Quote(v), nil
	default:
		return "", &InitializerValueError{
			Name:   name,
			Reason: fmt.Sprintf("unsupported value type %T", value),
		}
	}
}

package params

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrMissingConfig indicates a job id was requested on parameters without a config entry.
var ErrMissingConfig = errors.New("call parameters have no config entry")

const (
	configKey   = "config"
	jobIDKey    = "job_id"
	jobIDCamel  = "jobId"
	placeholder = "$"
)

// CallParameters are the named parameters of a single procedure call.
type CallParameters struct {
	Map
}

// NewCallParameters builds parameters from args, keeping their order.
func NewCallParameters(args ...Arg) *CallParameters {
	p := &CallParameters{}
	for _, arg := range args {
		p.Set(arg.Name, arg.Value)
	}
	return p
}

// PlaceholderStr renders "$a, $b" for the parameters in insertion order.
func (p *CallParameters) PlaceholderStr() string {
	keys := p.Keys()
	tokens := make([]string, len(keys))
	for i, k := range keys {
		tokens[i] = placeholder + k
	}
	return strings.Join(tokens, ", ")
}

// JobID returns the job id stored in the config entry under job_id or jobId.
func (p *CallParameters) JobID() (string, bool) {
	cfg, ok := p.Get(configKey)
	if !ok {
		return "", false
	}
	for _, key := range []string{jobIDKey, jobIDCamel} {
		if id := lookupString(cfg, key); id != "" {
			return id, true
		}
	}
	return "", false
}

// EnsureJobIDInConfig returns the configured job id, generating and storing a fresh
// one under job_id when none is set. Calling it again returns the same id.
func (p *CallParameters) EnsureJobIDInConfig() (string, error) {
	cfg, ok := p.Get(configKey)
	if !ok {
		return "", ErrMissingConfig
	}
	if id, ok := p.JobID(); ok {
		return id, nil
	}

	id := uuid.NewString()
	switch c := cfg.(type) {
	case *Map:
		c.Set(jobIDKey, id)
	case map[string]any:
		c[jobIDKey] = id
	default:
		return "", fmt.Errorf("%w: config is %T", ErrMissingConfig, cfg)
	}
	return id, nil
}

func lookupString(cfg any, key string) string {
	var (
		v  any
		ok bool
	)
	switch c := cfg.(type) {
	case *Map:
		v, ok = c.Get(key)
	case map[string]any:
		v, ok = c[key]
	}
	if !ok || v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

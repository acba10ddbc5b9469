package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/kaptinlin/jsonrepair"
	"github.com/quicktools-app/quicktools/internal/engine"
)

// UUID generates a version-4 UUID. The crypto-backed generator is
// preferred; when it fails, a manual random-hex fallback is used.
// The fallback is NOT cryptographically secure.
type UUID struct{}

func NewUUID() *UUID { return &UUID{} }

func (*UUID) EngineID() string { return "util.uuid" }

func (*UUID) Compute(req *engine.Request) engine.Result {
	id, err := uuid.NewRandom()
	if err != nil {
		return engine.FieldsResult(engine.F("uuid", fallbackUUID(req.Rand)))
	}
	return engine.FieldsResult(engine.F("uuid", id.String()))
}

// fallbackUUID builds a v4-shaped UUID from the injected generator.
func fallbackUUID(rng engine.Rand) string {
	const hexDigits = "0123456789abcdef"
	var b strings.Builder
	for _, c := range "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx" {
		switch c {
		case 'x':
			b.WriteByte(hexDigits[rng.IntN(16)])
		case 'y':
			b.WriteByte(hexDigits[rng.IntN(4)|0x8])
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

const (
	passwordLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	passwordSymbols = "!@#$%^&*()_+-=[]{};:,.<>?"

	passwordMinLen     = 6
	passwordMaxLen     = 64
	passwordDefaultLen = 16
)

// Password generates a random password from letters+digits, plus a fixed
// symbol set when includeSymbols is set. Length is clamped to [6, 64].
type Password struct{}

func NewPassword() *Password { return &Password{} }

func (*Password) EngineID() string { return "util.password" }

func (*Password) Compute(req *engine.Request) engine.Result {
	length := passwordDefaultLen
	if l, ok := req.Inputs.Num("length"); ok {
		length = int(l)
	}
	if length < passwordMinLen {
		length = passwordMinLen
	}
	if length > passwordMaxLen {
		length = passwordMaxLen
	}

	chars := passwordLetters
	if req.Inputs.Bool("includeSymbols") {
		chars += passwordSymbols
	}

	out := make([]byte, length)
	for i := range out {
		out[i] = chars[req.Rand.IntN(len(chars))]
	}
	return engine.FieldsResult(engine.F("password", string(out)))
}

// JSONFormat prettifies, minifies, or repairs JSON text.
// Empty input yields empty output, not an error; any mode other than
// "minify" or "repair" prettifies.
type JSONFormat struct{}

func NewJSONFormat() *JSONFormat { return &JSONFormat{} }

func (*JSONFormat) EngineID() string { return "util.json" }

func (*JSONFormat) Compute(req *engine.Request) engine.Result {
	txt := req.Inputs.Str("json")
	if strings.TrimSpace(txt) == "" {
		return engine.TextResult("")
	}

	mode := req.Inputs.Str(engine.KeyMode)
	if mode == "repair" {
		repaired, err := jsonrepair.JSONRepair(txt)
		if err != nil {
			return engine.Errorf("Invalid JSON.")
		}
		txt = repaired
	}

	var buf bytes.Buffer
	if mode == "minify" {
		if err := json.Compact(&buf, []byte(txt)); err != nil {
			return engine.Errorf("Invalid JSON.")
		}
	} else {
		if err := json.Indent(&buf, []byte(txt), "", "  "); err != nil {
			return engine.Errorf("Invalid JSON.")
		}
	}
	return engine.TextResult(buf.String())
}

// RandomNumber draws a uniform integer in [min, max] inclusive.
type RandomNumber struct{}

func NewRandomNumber() *RandomNumber { return &RandomNumber{} }

func (*RandomNumber) EngineID() string { return "util.randomNumber" }

func (*RandomNumber) Compute(req *engine.Request) engine.Result {
	minV := 0.0
	if v, ok := req.Inputs.Num("min"); ok {
		minV = v
	}
	maxV := 100.0
	if v, ok := req.Inputs.Num("max"); ok {
		maxV = v
	}
	if maxV < minV {
		return engine.Errorf("max must be >= min.")
	}

	// Fractional bounds tighten inward so the draw never leaves [min, max].
	lo, hi := int(math.Ceil(minV)), int(math.Floor(maxV))
	if lo > hi {
		return engine.Errorf("No integers between min and max.")
	}
	value := req.Rand.IntN(hi-lo+1) + lo
	return engine.FieldsResult(engine.F("value", value))
}

// TeamSplit shuffles newline-separated names (Fisher-Yates, unbiased) and
// splits them into two teams at ceil(n/2).
type TeamSplit struct{}

func NewTeamSplit() *TeamSplit { return &TeamSplit{} }

func (*TeamSplit) EngineID() string { return "util.teamSplit" }

func (*TeamSplit) Compute(req *engine.Request) engine.Result {
	var names []string
	for _, line := range strings.Split(req.Inputs.Str("names"), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	if len(names) < 2 {
		return engine.Errorf("Add at least 2 names (one per line).")
	}

	for i := len(names) - 1; i > 0; i-- {
		j := req.Rand.IntN(i + 1)
		names[i], names[j] = names[j], names[i]
	}

	mid := (len(names) + 1) / 2
	return engine.FieldsResult(
		engine.F("teamA", names[:mid]),
		engine.F("teamB", names[mid:]),
	)
}

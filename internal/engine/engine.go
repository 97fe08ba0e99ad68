package engine

import (
	"log/slog"

	"github.com/nao1215/genix/internal/charset"
	"github.com/nao1215/genix/internal/entropy"
	"github.com/nao1215/genix/internal/generator"
	"github.com/nao1215/genix/internal/wordlist"
)

// DefaultSeparator joins passphrase words unless a request sets another one.
const DefaultSeparator = "-"

// Default request sizes.
const (
	DefaultLength = 20
	DefaultWords  = 6
)

// tokenPoolSize is the number of values one random byte can take.
const tokenPoolSize = 256

// Request describes one generation. Use DefaultRequest for a populated value;
// the zero value is not usable.
type Request struct {
	// Style selects the kind of secret.
	Style Style

	// Length is the number of characters for random and pin, and the number
	// of random bytes for hex and base64.
	Length int

	// Words is the number of passphrase words.
	Words int

	// Classes are the character classes enabled for the random style.
	Classes []charset.Class

	// Exclude lists characters removed from the alphabet.
	Exclude string

	// ExcludeAmbiguous removes characters such as 1, l, I, 0, O and |.
	ExcludeAmbiguous bool

	// Minimums are per-class minimum counts for character styles.
	Minimums generator.Minimums

	// Separator joins passphrase words. It is used as given, so an empty
	// separator concatenates the words.
	Separator string

	// Wordlist is the passphrase wordlist. Nil selects the built-in list.
	Wordlist *wordlist.Wordlist

	// MinEntropy, when positive, raises Length or Words until the estimate
	// reaches this many bits.
	MinEntropy float64

	// Thresholds label the estimate. The zero value selects the defaults.
	Thresholds entropy.Thresholds
}

// DefaultRequest returns a request for a 20-character password drawn from
// every class.
func DefaultRequest() Request {
	return Request{
		Style:      StyleRandom,
		Length:     DefaultLength,
		Words:      DefaultWords,
		Classes:    charset.AllClasses(),
		Separator:  DefaultSeparator,
		Thresholds: entropy.DefaultThresholds(),
	}
}

// Result is one generated secret with its strength estimate.
type Result struct {
	Password string `json:"password"`
	Style    Style  `json:"style"`

	// Length is the number of characters, words or bytes actually used.
	Length int `json:"length"`

	// RequestedLength is the length before any min-entropy adjustment.
	RequestedLength int `json:"requested_length"`

	// LengthAdjusted is true when MinEntropy raised the length.
	LengthAdjusted bool `json:"length_adjusted"`

	// PoolSize is the alphabet size, wordlist size or 256 for byte tokens.
	PoolSize int `json:"pool_size"`

	Report entropy.Report `json:"entropy"`
}

// LogValue implements slog.LogValuer. The password is left out.
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("style", string(r.Style)),
		slog.Int("length", r.Length),
		slog.Int("pool_size", r.PoolSize),
		slog.Float64("bits", r.Report.Bits),
		slog.String("label", r.Report.Label.String()),
		slog.Bool("length_adjusted", r.LengthAdjusted),
	)
}

// Plan is a validated request, ready to draw passwords from any Source.
// A Plan is immutable and may be shared between goroutines as long as each
// goroutine passes its own Source to Draw.
type Plan struct {
	style           Style
	length          int
	requestedLength int
	alphabet        *charset.Alphabet
	minimums        generator.Minimums
	words           *wordlist.Wordlist
	separator       string
	report          entropy.Report
}

// Prepare performs every construction step of req. Any error it returns is a
// configuration error; no randomness has been consumed.
func Prepare(req Request) (*Plan, error) {
	style, err := ParseStyle(string(req.Style))
	if err != nil {
		return nil, err
	}

	thresholds := req.Thresholds
	if thresholds == (entropy.Thresholds{}) {
		thresholds = entropy.DefaultThresholds()
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	p := &Plan{style: style, separator: req.Separator}

	var pool int
	switch style {
	case StyleRandom, StylePin:
		classes := req.Classes
		minimums := req.Minimums
		if style == StylePin {
			classes = []charset.Class{charset.Digit}
			minimums = generator.Minimums{charset.Digit: req.Minimums[charset.Digit]}
		}
		p.alphabet, err = charset.Build(charset.Options{
			Classes:          classes,
			Exclude:          req.Exclude,
			ExcludeAmbiguous: req.ExcludeAmbiguous,
		})
		if err != nil {
			return nil, err
		}
		p.minimums = minimums
		p.requestedLength = req.Length
		pool = p.alphabet.Size()
	case StylePassphrase:
		p.words = req.Wordlist
		if p.words == nil {
			p.words = wordlist.Default()
		}
		p.requestedLength = req.Words
		pool = p.words.WordCount()
	case StyleHex, StyleBase64:
		p.requestedLength = req.Length
		pool = tokenPoolSize
	}

	p.length = p.requestedLength
	// NaN and infinite targets are rejected by RequiredLength.
	if req.MinEntropy != 0 && p.length > 0 {
		needed, err := entropy.RequiredLength(req.MinEntropy, pool)
		if err != nil {
			return nil, err
		}
		if needed > p.length {
			p.length = needed
		}
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	p.report = entropy.EstimateWith(thresholds, style.Mode(), p.length, pool)
	return p, nil
}

// validate checks the sizes with the same rules the generator applies, so
// that a Plan never fails to draw.
func (p *Plan) validate() error {
	switch p.style {
	case StylePassphrase:
		return generator.ValidatePassphrase(p.words, p.length)
	case StyleHex, StyleBase64:
		return generator.ValidateToken(p.length)
	default:
		return generator.ValidatePassword(p.alphabet, p.length, p.minimums)
	}
}

// Style returns the planned style.
func (p *Plan) Style() Style { return p.style }

// Length returns the length that will be drawn, after any adjustment.
func (p *Plan) Length() int { return p.length }

// Report returns the strength estimate shared by every password of the plan.
func (p *Plan) Report() entropy.Report { return p.report }

// Draw generates one password.
func (p *Plan) Draw(src generator.Source) (Result, error) {
	var (
		secret string
		err    error
	)
	switch p.style {
	case StylePassphrase:
		secret, err = generator.Passphrase(src, p.words, p.length, p.separator)
	case StyleHex:
		secret, err = generator.Token(src, generator.Hex, p.length)
	case StyleBase64:
		secret, err = generator.Token(src, generator.Base64, p.length)
	default:
		secret, err = generator.Password(src, p.alphabet, p.length, p.minimums)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{
		Password:        secret,
		Style:           p.style,
		Length:          p.length,
		RequestedLength: p.requestedLength,
		LengthAdjusted:  p.length != p.requestedLength,
		PoolSize:        p.report.PoolSize,
		Report:          p.report,
	}, nil
}

// Run prepares req and draws a single password from src.
func Run(req Request, src generator.Source) (Result, error) {
	plan, err := Prepare(req)
	if err != nil {
		return Result{}, err
	}
	return plan.Draw(src)
}

package standardize

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// RegexReplace compiles Pattern once, on first use, and is safe to apply
// from several goroutines.
type RegexReplace struct {
	Column  string `json:"column"`
	Pattern string `json:"pattern"`
	Replace string `json:"replace"`

	once sync.Once
	re   *regexp.Regexp
	err  error
}

func (t *RegexReplace) Name() string   { return "regex_replace" }
func (t *RegexReplace) RowLocal() bool { return true }

func (t *RegexReplace) compile() (*regexp.Regexp, error) {
	t.once.Do(func() {
		t.re, t.err = regexp.Compile(t.Pattern)
		if t.err != nil {
			t.err = fmt.Errorf("pattern %q: %w", t.Pattern, t.err)
		}
	})
	return t.re, t.err
}

func (t *RegexReplace) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	re, err := t.compile()
	if err != nil {
		return nil, err
	}
	return in.MapColumn(t.Column, func(v string) string {
		return re.ReplaceAllString(v, t.Replace)
	}), nil
}

package pdfdoc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/lexdoc/normalize"
)

type fakeExtractor struct {
	text     string
	err      error
	deadline bool
}

func (f *fakeExtractor) ExtractText(ctx context.Context, _ string) (string, error) {
	_, f.deadline = ctx.Deadline()
	return f.text, f.err
}

func TestConverter_Convert(t *testing.T) {
	fx := &fakeExtractor{text: "ส  านักงาน\n1. ทั่วไป"}
	c := &Converter{Extractor: fx, Timeout: time.Minute}

	out, err := c.Convert(context.Background(), "in.pdf")
	require.NoError(t, err)
	assert.True(t, fx.deadline, "the timeout reaches the extractor")
	assert.Contains(t, out, ">สำนักงาน</p>")
	assert.Contains(t, out, `<div style="`+headingStyle+`">1. ทั่วไป</div>`)
}

func TestConverter_CustomNormalizer(t *testing.T) {
	c := &Converter{
		Extractor:  &fakeExtractor{text: "abc"},
		Normalizer: normalize.Func(strings.ToUpper),
	}
	out, err := c.Convert(context.Background(), "in.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, ">ABC</p>")
}

func TestConverter_NoTimeout(t *testing.T) {
	fx := &fakeExtractor{}
	_, err := (&Converter{Extractor: fx}).Convert(context.Background(), "in.pdf")
	require.NoError(t, err)
	assert.False(t, fx.deadline)
}

func TestConverter_ExtractionErrors(t *testing.T) {
	_, err := (&Converter{Extractor: &fakeExtractor{err: errors.New("boom")}}).Convert(context.Background(), "in.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractionFailed))
	assert.Contains(t, err.Error(), "boom")
}

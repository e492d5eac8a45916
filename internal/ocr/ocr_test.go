package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/label-verifier/internal/common"
	"github.com/joseph-ayodele/label-verifier/internal/label"
)

type fakeRunner struct {
	run   func(name string, args ...string) ([]byte, []byte, error)
	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.run(name, args...)
}

func newTestRecognizer(cfg Config, r Runner) *Recognizer {
	rec := NewRecognizer(cfg, nil)
	rec.runner = r
	return rec
}

const tsvHeader = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"

func tsvRow(cols ...string) string {
	return strings.Join(cols, "\t")
}

func sampleTSV() []byte {
	rows := []string{
		tsvHeader,
		tsvRow("1", "1", "0", "0", "0", "0", "0", "0", "500", "700", "-1", ""),
		tsvRow("4", "1", "1", "1", "1", "0", "50", "40", "400", "32", "-1", ""),
		tsvRow("5", "1", "1", "1", "1", "1", "50", "40", "120", "32", "96.5", "OLD"),
		tsvRow("5", "1", "1", "1", "1", "2", "180", "40", "90", "32", "95.0", "TOM"),
		tsvRow("5", "1", "1", "1", "1", "3", "0", "0", "0", "0", "-1", "ghost"),
		tsvRow("5", "1", "1", "1", "2", "1", "50", "80", "60", "30", "91.0", "45%"),
		tsvRow("5", "1", "1", "1", "2", "2", "115", "80", "40", "30", "88.0", "   "),
		"not a tsv row",
		"",
	}
	return []byte(strings.Join(rows, "\n"))
}

func TestParseTSV(t *testing.T) {
	words := parseTSV(sampleTSV(), 2)

	require.Len(t, words, 3)

	assert.Equal(t, "OLD", words[0].Text)
	assert.Equal(t, label.NewBoundingBox(50, 40, 170, 72), words[0].BBox)
	assert.Equal(t, 96.5, words[0].Confidence)
	assert.Equal(t, 2, words[0].Pass)
	assert.Equal(t, 1, words[0].Block)
	assert.Equal(t, 1, words[0].Paragraph)
	assert.Equal(t, 1, words[0].Line)

	assert.Equal(t, "TOM", words[1].Text)
	assert.Equal(t, "45%", words[2].Text)
	assert.Equal(t, 2, words[2].Line)
}

func TestParseTSVEmptyOutput(t *testing.T) {
	assert.Empty(t, parseTSV(nil, 0))
	assert.Empty(t, parseTSV([]byte(tsvHeader+"\n"), 0))
}

func TestRecognizeMultiPass(t *testing.T) {
	secondPass := []byte(strings.Join([]string{
		tsvHeader,
		tsvRow("5", "1", "1", "1", "1", "1", "52", "41", "118", "31", "93.0", "0LD"),
	}, "\n"))

	fake := &fakeRunner{run: func(_ string, args ...string) ([]byte, []byte, error) {
		if psmArg(args) == "3" {
			return sampleTSV(), nil, nil
		}
		return secondPass, nil, nil
	}}
	rec := newTestRecognizer(Config{PSMModes: []int{3, 6}}, fake)

	words, err := rec.Recognize(context.Background(), "label.png")
	require.NoError(t, err)
	require.Len(t, words, 4)
	assert.Equal(t, 0, words[0].Pass)
	assert.Equal(t, 1, words[3].Pass)
	assert.Equal(t, "0LD", words[3].Text)
}

func TestRecognizePartialFailure(t *testing.T) {
	fake := &fakeRunner{run: func(_ string, args ...string) ([]byte, []byte, error) {
		if psmArg(args) == "3" {
			return nil, []byte("read_params_file: Can't open tsv"), fmt.Errorf("exit status 1")
		}
		return sampleTSV(), nil, nil
	}}
	rec := newTestRecognizer(Config{PSMModes: []int{3, 6}}, fake)

	words, err := rec.Recognize(context.Background(), "label.png")
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, 1, words[0].Pass)
}

func TestRecognizeAllPassesFail(t *testing.T) {
	fake := &fakeRunner{run: func(string, ...string) ([]byte, []byte, error) {
		return nil, nil, fmt.Errorf("exit status 1")
	}}
	rec := newTestRecognizer(Config{PSMModes: []int{3, 6}}, fake)

	_, err := rec.Recognize(context.Background(), "label.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--psm 3")
}

func TestAvailable(t *testing.T) {
	fake := &fakeRunner{run: func(string, ...string) ([]byte, []byte, error) {
		return []byte("tesseract 5.3.0"), nil, nil
	}}
	rec := newTestRecognizer(Config{}, fake)

	require.NoError(t, rec.Available(context.Background()))
	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"tesseract", "--version"}, fake.calls[0])
}

func TestAvailableMissingBinary(t *testing.T) {
	fake := &fakeRunner{run: func(string, ...string) ([]byte, []byte, error) {
		return nil, nil, fmt.Errorf("exec: \"tesseract\": executable file not found in $PATH")
	}}
	rec := newTestRecognizer(Config{}, fake)

	err := rec.Available(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrOCRUnavailable))
}

func TestArgs(t *testing.T) {
	rec := NewRecognizer(Config{OEM: 1, TessdataDir: "/usr/share/tessdata"}, nil)

	got := rec.args("label.png", 6)
	want := []string{
		"label.png", "stdout",
		"-l", "eng",
		"--psm", "6",
		"--oem", "1",
		"--tessdata-dir", "/usr/share/tessdata",
		"tsv",
	}
	assert.Equal(t, want, got)
}

func TestMeanConfidence(t *testing.T) {
	assert.Zero(t, MeanConfidence(nil))

	blocks := []label.TextBlock{
		{Text: "OLD TOM", Confidence: 90},
		{Text: "750 mL", Confidence: 96},
	}
	assert.InDelta(t, 93.0, MeanConfidence(blocks), 1e-9)
}

func psmArg(args []string) string {
	for i, a := range args {
		if a == "--psm" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dskvich/image-generator/pkg/domain"
	"github.com/dskvich/image-generator/pkg/logger"
	"github.com/fatih/color"
)

const (
	exitCommand    = "exit"
	promptText     = "\nEnter your prompt (or type 'exit' to quit):\n\n"
	imagesPerRound = 1
)

var (
	titleColor   = color.New(color.FgMagenta, color.Bold)
	promptColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

type imageGenerator interface {
	Generate(ctx context.Context, prompt string, count int) domain.GenerateResult
}

// Session is the interactive read-evaluate loop on top of an image generator.
type Session struct {
	in  io.Reader
	out io.Writer
	gen imageGenerator
}

func NewSession(in io.Reader, out io.Writer, gen imageGenerator) *Session {
	return &Session{in: in, out: out, gen: gen}
}

func PrintBanner(w io.Writer) {
	titleColor.Fprintln(w, "IMAGE GENERATOR started")
}

// IsExit reports whether the line is the exit command.
func IsExit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), exitCommand)
}

// Run reads prompts until the exit command, end of input or ctx is done.
// Only the context error is returned.
func (s *Session) Run(ctx context.Context) error {
	lines := readLines(ctx, s.in)

	for {
		promptColor.Fprint(s.out, promptText)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				s.farewell()
				return nil
			}
			line = l
		}

		if IsExit(line) {
			s.farewell()
			return nil
		}

		s.handle(ctx, line)
	}
}

func (s *Session) handle(ctx context.Context, prompt string) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "Error interacting with OpenAI", "panic", r)
			errorColor.Fprintf(s.out, "❌ Error interacting with OpenAI: %v\n", r)
		}
	}()

	fmt.Fprintln(s.out, "\nGenerating image...")

	res := s.gen.Generate(ctx, prompt, imagesPerRound)
	s.report(res)
}

func (s *Session) report(res domain.GenerateResult) {
	switch {
	case res.Err != nil:
		errorColor.Fprintf(s.out, "❌ Error generating image: %v\n", res.Err)
	case res.Empty():
		warnColor.Fprintln(s.out, "No images generated.")
	default:
		successColor.Fprintf(s.out, "Generated %d image(s).\n", len(res.URLs))
		if res.Download != nil {
			s.reportDownload(*res.Download)
		}
	}

	if res.Empty() {
		warnColor.Fprintln(s.out, "No images were returned.")
	}
}

func (s *Session) reportDownload(d domain.DownloadResult) {
	var statusErr *domain.StatusError
	switch {
	case d.OK():
		successColor.Fprintf(s.out, "✅ Image downloaded and saved as %s\n", d.Path)
	case errors.As(d.Err, &statusErr):
		errorColor.Fprintf(s.out, "❌ Failed to download image. Status code: %d\n", statusErr.StatusCode)
	default:
		errorColor.Fprintf(s.out, "❌ Error downloading image: %v\n", d.Err)
	}
}

func (s *Session) farewell() {
	fmt.Fprintln(s.out, "Exiting the program.")
}

// readLines feeds lines from r into the returned channel and closes it at
// end of input. Trailing line terminators are removed.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" || err == nil {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Warn("reading input failed", logger.Err(err))
				}
				return
			}
		}
	}()

	return lines
}

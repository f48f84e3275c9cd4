package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"logscope/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// maxLineSize is the longest line the scanner accepts
	maxLineSize = 1024 * 1024
	// DefaultChunkSize is the number of lines handed to one worker
	DefaultChunkSize = 4096
)

// ErrNotRegularFile is returned when the input path is not a regular file
var ErrNotRegularFile = errors.New("not a regular file")

// Option configures a Parser
type Option func(*Parser)

// WithWorkers sets how many goroutines parse chunks of the file.
// 1 (default) parses while streaming.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithChunkSize sets the number of lines per parallel chunk
func WithChunkSize(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithSkipMalformed makes the parser skip lines that fail to parse instead
// of aborting on the first one.
func WithSkipMalformed(skip bool) Option {
	return func(p *Parser) { p.skipMalformed = skip }
}

// Parser turns access log files into LogFiles
type Parser struct {
	grammar       *Grammar
	builder       *RecordBuilder
	workers       int
	chunkSize     int
	skipMalformed bool
}

// New creates a new Parser
func New(opts ...Option) *Parser {
	p := &Parser{
		grammar:   NewGrammar(),
		builder:   NewRecordBuilder(),
		workers:   1,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseLine parses a single line. lineNum is recorded on the record and on errors.
func (p *Parser) ParseLine(line string, lineNum int) (*model.LogRecord, error) {
	raw, err := p.grammar.Match(line)
	if err == nil {
		var rec *model.LogRecord
		rec, err = p.builder.Build(raw, strings.TrimRight(line, "\r\n"))
		if err == nil {
			rec.Line = lineNum
			return rec, nil
		}
	}

	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Line = lineNum
	}
	return nil, err
}

// ParseFile parses the file at path. The file handle is released on every path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*model.LogFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access log file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("log file %s: %w", path, ErrNotRegularFile)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer f.Close()

	lf, err := p.ParseReader(ctx, f, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log file %s: %w", path, err)
	}
	return lf, nil
}

// cancelCheckInterval is how many lines the sequential parser reads between
// context checks
const cancelCheckInterval = 1024

// ParseReader parses every line of r. Records keep the order of the input.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader, path string) (*model.LogFile, error) {
	if p.workers > 1 {
		return p.parseParallel(ctx, r, path)
	}

	lf := model.NewLogFile(path)
	scanner := newScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum%cancelCheckInterval == 1 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := scanner.Text()
		if isBlank(line) {
			continue
		}

		rec, err := p.ParseLine(line, lineNum)
		if err != nil {
			if !p.skip(err) {
				return nil, err
			}
			lf.LinesSkipped++
			continue
		}
		lf.Add(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read line %d: %w", lineNum+1, err)
	}
	lf.LinesRead = lineNum

	return lf, nil
}

// chunk is a run of consecutive lines parsed by one worker
type chunk struct {
	firstLine int
	lines     []string
	records   []*model.LogRecord
	skipped   int
	err       error
}

func (p *Parser) parseParallel(ctx context.Context, r io.Reader, path string) (*model.LogFile, error) {
	var chunks []*chunk
	scanner := newScanner(r)
	lineNum := 0
	cur := &chunk{firstLine: 1}
	for scanner.Scan() {
		lineNum++
		cur.lines = append(cur.lines, scanner.Text())
		if len(cur.lines) == p.chunkSize {
			chunks = append(chunks, cur)
			cur = &chunk{firstLine: lineNum + 1}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read line %d: %w", lineNum+1, err)
	}
	if len(cur.lines) > 0 {
		chunks = append(chunks, cur)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, c := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.parseChunk(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("chunks", len(chunks)).
		Int("workers", p.workers).
		Msg("Parsed log file in parallel")

	// Chunks are merged in file order so the earliest failing line wins.
	lf := model.NewLogFile(path)
	for _, c := range chunks {
		if c.err != nil {
			return nil, c.err
		}
		lf.Records = append(lf.Records, c.records...)
		lf.LinesSkipped += c.skipped
	}
	lf.LinesRead = lineNum

	return lf, nil
}

func (p *Parser) parseChunk(c *chunk) {
	c.records = make([]*model.LogRecord, 0, len(c.lines))
	for i, line := range c.lines {
		if isBlank(line) {
			continue
		}
		rec, err := p.ParseLine(line, c.firstLine+i)
		if err != nil {
			if !p.skip(err) {
				c.err = err
				return
			}
			c.skipped++
			continue
		}
		c.records = append(c.records, rec)
	}
	c.lines = nil
}

// skip reports whether a failed line should be skipped, logging it if so
func (p *Parser) skip(err error) bool {
	if !p.skipMalformed {
		return false
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		return false
	}
	log.Warn().Err(err).Int("line", perr.Line).Msg("Skipping malformed line")
	return true
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

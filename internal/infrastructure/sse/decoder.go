// Package sse decodes chat-completion event streams.
package sse

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

const (
	dataPrefix = "data: "
	doneMarker = "[DONE]"
)

type completionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Decoder accumulates assistant text from an OpenAI-style SSE stream fed in
// arbitrary chunks. It implements io.Writer so it can sit behind a tee while
// the raw bytes are relayed elsewhere.
//
// Only newline-terminated lines are interpreted. A data line whose JSON does
// not parse is pushed back to the front of the buffer and the batch stops;
// it is retried with the next chunk.
type Decoder struct {
	partial []byte // incomplete UTF-8 sequence carried to the next chunk
	buf     string
	content strings.Builder
	done    bool
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Write(p []byte) (int, error) {
	d.Feed(p)
	return len(p), nil
}

// Feed consumes one chunk and returns the text deltas it completed.
func (d *Decoder) Feed(chunk []byte) []string {
	if d.done {
		return nil
	}

	data := append(d.partial, chunk...)
	cut := completePrefix(data)
	d.buf += string(data[:cut])
	d.partial = append([]byte(nil), data[cut:]...)

	return d.drain()
}

func (d *Decoder) drain() []string {
	var deltas []string
	for !d.done {
		idx := strings.IndexByte(d.buf, '\n')
		if idx < 0 {
			break
		}
		line := d.buf[:idx]
		d.buf = d.buf[idx+1:]
		line = strings.TrimSuffix(line, "\r")

		if strings.HasPrefix(line, ":") || strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		payload := strings.TrimSpace(line[len(dataPrefix):])
		if payload == doneMarker {
			d.done = true
			break
		}

		var parsed completionChunk
		if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
			d.buf = line + "\n" + d.buf
			break
		}
		if len(parsed.Choices) > 0 && parsed.Choices[0].Delta.Content != "" {
			delta := parsed.Choices[0].Delta.Content
			d.content.WriteString(delta)
			deltas = append(deltas, delta)
		}
	}
	return deltas
}

// Content is the assistant text decoded so far.
func (d *Decoder) Content() string {
	return d.content.String()
}

// Done reports whether the [DONE] sentinel was seen.
func (d *Decoder) Done() bool {
	return d.done
}

// completePrefix returns the length of the longest prefix of b that does not
// end inside a multi-byte UTF-8 sequence.
func completePrefix(b []byte) int {
	n := len(b)
	for i := 1; i <= utf8.UTFMax && i <= n; i++ {
		start := n - i
		if !utf8.RuneStart(b[start]) {
			continue
		}
		if utf8.FullRune(b[start:]) {
			return n
		}
		return start
	}
	return n
}

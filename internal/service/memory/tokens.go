package memory

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/casabot/internal/core"
)

// Tokenizer counts tokens for history budgeting.
type Tokenizer interface {
	Count(text string) int
}

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

// TiktokenTokenizer counts with the cl100k_base encoding. If the encoding
// cannot be loaded (offline first run), it falls back to a bytes/4 estimate
// rather than failing the turn.
type TiktokenTokenizer struct{}

func (TiktokenTokenizer) Count(text string) int {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tk = enc
		}
	})
	if tk == nil {
		return len(text)/4 + 1
	}
	return len(tk.Encode(text, nil, nil))
}

// TrimHistory drops the oldest messages until the remainder fits the token
// budget. Order is preserved; the newest message always survives even if it
// alone exceeds the budget, so the turn can still proceed.
func TrimHistory(msgs []core.Message, budget int, tok Tokenizer) []core.Message {
	if budget <= 0 || len(msgs) == 0 {
		return msgs
	}

	total := 0
	start := len(msgs)
	for i := len(msgs) - 1; i >= 0; i-- {
		cost := tok.Count(msgs[i].Content)
		if total+cost > budget && start < len(msgs) {
			break
		}
		total += cost
		start = i
	}
	return msgs[start:]
}

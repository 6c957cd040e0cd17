package source

import (
	"sort"

	"github.com/rulelint-dev/rulelint/pkg/token"
)

// Item is one entry of the merged token/comment sequence: exactly one of
// Token or Comment is set.
type Item struct {
	Token   *token.Token
	Comment *token.Comment
}

// IsComment returns true if the item is a comment.
func (it *Item) IsComment() bool {
	return it.Comment != nil
}

// Span returns the source span of the item.
func (it *Item) Span() token.Span {
	if it.Comment != nil {
		return it.Comment.Span
	}
	return it.Token.Span
}

// Index is the position-sorted sequence of all tokens and comments of one
// unit. Tokens and comments never overlap, so sorting by start offset gives
// a total order. The end-of-input token is excluded: it must never act as a
// code neighbor.
type Index struct {
	items []*Item
}

// NewIndex builds an index from a token stream and a comment list.
func NewIndex(tokens []token.Token, comments []*token.Comment) *Index {
	items := make([]*Item, 0, len(tokens)+len(comments))
	for i := range tokens {
		if tokens[i].Type == token.EOF {
			continue
		}
		items = append(items, &Item{Token: &tokens[i]})
	}
	for _, c := range comments {
		items = append(items, &Item{Comment: c})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Span().Start.Offset < items[j].Span().Start.Offset
	})
	return &Index{items: items}
}

// Items returns the full merged sequence in source order.
func (ix *Index) Items() []*Item {
	return ix.items
}

// Before returns the nearest item that starts before the given span, or nil
// at the unit boundary. The result may be a token or a comment; callers
// needing a code token filter comments themselves or use TokenBefore.
func (ix *Index) Before(span token.Span) *Item {
	i := sort.Search(len(ix.items), func(i int) bool {
		return ix.items[i].Span().Start.Offset >= span.Start.Offset
	})
	if i == 0 {
		return nil
	}
	return ix.items[i-1]
}

// After returns the nearest item that starts at or after the end of the
// given span, or nil at the unit boundary.
func (ix *Index) After(span token.Span) *Item {
	i := sort.Search(len(ix.items), func(i int) bool {
		return ix.items[i].Span().Start.Offset >= span.End.Offset
	})
	if i == len(ix.items) {
		return nil
	}
	return ix.items[i]
}

// TokenBefore walks backward from the given span, skipping comment-typed
// neighbors, and returns the nearest preceding code token, or nil if only
// comments (or nothing) precede it.
func (ix *Index) TokenBefore(span token.Span) *token.Token {
	cur := span
	for {
		it := ix.Before(cur)
		if it == nil {
			return nil
		}
		if it.IsComment() {
			cur = it.Span()
			continue
		}
		return it.Token
	}
}

// TokenAfter walks forward from the given span, skipping comment-typed
// neighbors, and returns the nearest following code token, or nil if only
// comments (or nothing) follow it.
func (ix *Index) TokenAfter(span token.Span) *token.Token {
	cur := span
	for {
		it := ix.After(cur)
		if it == nil {
			return nil
		}
		if it.IsComment() {
			cur = it.Span()
			continue
		}
		return it.Token
	}
}

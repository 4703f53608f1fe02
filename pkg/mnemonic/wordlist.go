package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// WordCount is the number of words in every BIP-39 wordlist.
const WordCount = 2048

// ideographicSpace joins Japanese mnemonics.
const ideographicSpace = "\u3000"

// Wordlist is an immutable BIP-39 wordlist with a reverse index.
// Lookups compare NFKD forms, so composed and decomposed input both match.
type Wordlist struct {
	name      string
	words     []string
	index     map[string]int
	separator string
}

// Built-in wordlists.
var (
	English            = newWordlist("english", wordlists.English, " ")
	Japanese           = newWordlist("japanese", wordlists.Japanese, ideographicSpace)
	Korean             = newWordlist("korean", wordlists.Korean, " ")
	Spanish            = newWordlist("spanish", wordlists.Spanish, " ")
	French             = newWordlist("french", wordlists.French, " ")
	Italian            = newWordlist("italian", wordlists.Italian, " ")
	Czech              = newWordlist("czech", wordlists.Czech, " ")
	ChineseSimplified  = newWordlist("chinese_simplified", wordlists.ChineseSimplified, " ")
	ChineseTraditional = newWordlist("chinese_traditional", wordlists.ChineseTraditional, " ")
)

// all is the detection order. English goes first since it is by far the
// most common and shares words with French.
var all = []*Wordlist{
	English, Spanish, French, Italian, Czech, Japanese, Korean,
	ChineseSimplified, ChineseTraditional,
}

func newWordlist(name string, words []string, sep string) *Wordlist {
	if len(words) != WordCount {
		panic(fmt.Sprintf("mnemonic: wordlist %s has %d words, want %d", name, len(words), WordCount))
	}
	index := make(map[string]int, len(words))
	for i, w := range words {
		index[norm.NFKD.String(w)] = i
	}
	return &Wordlist{name: name, words: words, index: index, separator: sep}
}

// WordlistByName returns the built-in wordlist with the given name.
// Names are case-insensitive; "" selects English.
func WordlistByName(name string) (*Wordlist, error) {
	if name == "" {
		return English, nil
	}
	name = strings.ToLower(name)
	for _, wl := range all {
		if wl.name == name {
			return wl, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWordlist, name)
}

// DetectWordlist returns the built-in wordlist the mnemonic is written in.
// Lists overlap (the two Chinese lists share most characters), so among
// the lists containing every word the first one whose checksum verifies
// wins; failing that, the first containing list is returned.
func DetectWordlist(mnemonic string) (*Wordlist, error) {
	words := strings.Fields(Normalize(mnemonic))
	if len(words) == 0 {
		return nil, ErrInvalidWordCount
	}
	var first *Wordlist
	for _, wl := range all {
		if !wl.containsAll(words) {
			continue
		}
		if IsValid(mnemonic, wl) {
			return wl, nil
		}
		if first == nil {
			first = wl
		}
	}
	if first == nil {
		return nil, ErrUnknownWord
	}
	return first, nil
}

// Name returns the wordlist's name.
func (w *Wordlist) Name() string {
	return w.name
}

// Word returns the word at index i.
func (w *Wordlist) Word(i int) string {
	return w.words[i]
}

// Index returns the position of word in the list.
func (w *Wordlist) Index(word string) (int, bool) {
	i, ok := w.index[norm.NFKD.String(word)]
	return i, ok
}

func (w *Wordlist) containsAll(words []string) bool {
	for _, word := range words {
		if _, ok := w.index[word]; !ok {
			return false
		}
	}
	return true
}

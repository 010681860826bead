package extract

import (
	"bufio"
	"os"
	"strings"
)

// Stopwords is a read-only set of uppercase tokens excluded from ticker
// candidacy. It is built once per run and never mutated afterwards.
type Stopwords map[string]struct{}

// NewStopwords builds a set from the given words, upper-casing each entry.
func NewStopwords(words ...string) Stopwords {
	sw := make(Stopwords, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" {
			sw[w] = struct{}{}
		}
	}
	return sw
}

// Contains reports membership, case-normalized.
func (s Stopwords) Contains(token string) bool {
	_, ok := s[strings.ToUpper(token)]
	return ok
}

// Merge returns a new set containing both s and the given words.
func (s Stopwords) Merge(words ...string) Stopwords {
	out := make(Stopwords, len(s)+len(words))
	for w := range s {
		out[w] = struct{}{}
	}
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" {
			out[w] = struct{}{}
		}
	}
	return out
}

// LoadStopwordsFile reads a newline-delimited stopword file. Blank lines and
// lines starting with '#' are ignored. A missing file yields an empty list.
func LoadStopwordsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToUpper(line))
	}
	return words, scanner.Err()
}

// DefaultStopwords returns the built-in stopword set: common English words
// and forum jargon that are ticker-shaped but almost never tickers.
func DefaultStopwords() Stopwords {
	return NewStopwords(defaultStopwordList...)
}

var defaultStopwordList = []string{
	// common English
	"A", "ABOUT", "AFTER", "AGAIN", "ALL", "ALSO", "AM", "AN", "AND", "ANY",
	"ARE", "AS", "AT", "BACK", "BE", "BEEN", "BEING", "BEST", "BIG",
	"BOTH", "BUT", "BUY", "BY", "CALL", "CAN", "CEO", "CFO", "COME", "COULD",
	"DAILY", "DAY", "DID", "DO", "DOES", "DONE", "DONT", "DOWN", "EACH",
	"EDIT", "EVEN", "EVERY", "FAQ", "FAR", "FEW", "FIRST", "FOR", "FROM",
	"GET", "GO", "GOING", "GONNA", "GOOD", "GOT", "HAD", "HAS", "HAVE", "HE",
	"HERE", "HIGH", "HIS", "HOLD", "HOW", "HUGE", "I", "IF", "IMO", "IN",
	"INTO", "IS", "IT", "ITS", "JUST", "KEEP", "KNOW", "LAST", "LETS", "LIKE",
	"LONG", "LOOK", "LOW", "MADE", "MAKE", "MANY", "MAY", "ME", "MIGHT",
	"MORE", "MOST", "MUCH", "MUST", "MY", "NEAR", "NEED", "NEW", "NEWS",
	"NEXT", "NO", "NOT", "NOW", "OF", "OFF", "ON", "ONE", "ONLY", "OPEN",
	"OR", "OTHER", "OUR", "OUT", "OVER", "OWN", "PLAY", "PM", "PRICE", "PUT",
	"READ", "REAL", "RIGHT", "RULES", "SAID", "SAME", "SAY", "SEE", "SELL",
	"SHE", "SHORT", "SO", "SOME", "SOON", "STILL", "STOCK", "STOP", "SUCH",
	"TAKE", "THAN", "THAT", "THE", "THEIR", "THEM", "THEN", "THERE", "THESE",
	"THEY", "THIS", "TIME", "TO", "TODAY", "TOO", "TOP", "UNDER", "UNTIL",
	"UP", "US", "USE", "VERY", "WANT", "WAS", "WAY", "WE", "WEEK", "WELL",
	"WENT", "WERE", "WHAT", "WHEN", "WHERE", "WHICH", "WHILE", "WHO", "WHY",
	"WILL", "WITH", "WONT", "WOULD", "YEAH", "YEAR", "YES", "YET", "YOU",
	"YOUR",
	// trading-forum jargon
	"AH", "API", "ATH", "ATM", "BAG", "BEAR", "BULL", "CALLS", "CHART", "DD",
	"DIP", "EOD", "EOW", "EPS", "ETF", "FD", "FDA", "FOMO", "FUD", "GAIN",
	"GAP", "HODL", "IPO", "ITM", "IV", "LMAO", "LOL", "LOSS", "MC", "MOASS",
	"MOON", "NFA", "OTC", "OTM", "PDT", "PR", "PUMP", "PUTS", "ROI", "RSI",
	"SEC", "SHARE", "SI", "SPAC", "TA", "TLDR", "USD", "VWAP", "WSB",
	"YOLO", "YTD",
}

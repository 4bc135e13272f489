// Package ris extracts a Literature record from a citation exported in the
// RIS tagged format, e.g.
//
//	TY  - JOUR
//	TI  - Beetles of Borneo
//	AU  - Smith, J.
//	PY  - 2019///
//	ER  -
//
// Only the tags that map onto Literature fields are read; everything else is
// ignored. Parsing stops at the first ER tag, so a file holding several
// citations yields the first one.
package ris

import (
	"errors"
	"regexp"
	"strings"

	"github.com/arthur-debert/taxostore/types"
)

// ErrNoCitation is returned when the text holds no usable RIS field.
var ErrNoCitation = errors.New("no RIS citation found")

var yearPattern = regexp.MustCompile(`\d{4}`)

// Parse reads text and returns the citation it describes. The returned
// record has no id.
func Parse(text string) (types.Literature, error) {
	var (
		lit     types.Literature
		authors []string
	)

	for _, line := range strings.Split(text, "\n") {
		tag, value, ok := splitLine(line)
		if !ok {
			continue
		}
		if tag == "ER" {
			break
		}
		if value == "" {
			continue
		}

		switch tag {
		case "TI", "T1":
			if lit.Title == "" {
				lit.Title = value
			}
		case "AU", "A1":
			authors = append(authors, value)
		case "JO", "JF", "T2":
			if lit.Journal == "" {
				lit.Journal = value
			}
		case "PY", "Y1":
			if lit.Year == "" {
				lit.Year = yearPattern.FindString(value)
			}
		case "DO":
			lit.DOI = value
		case "UR":
			if lit.URL == "" {
				lit.URL = value
			}
		case "AB", "N2":
			if lit.Abstract == "" {
				lit.Abstract = value
			}
		}
	}

	lit.Authors = strings.Join(authors, "; ")
	if lit == (types.Literature{}) {
		return types.Literature{}, ErrNoCitation
	}
	return lit, nil
}

// splitLine separates "XX  - value" into its tag and trimmed value.
func splitLine(line string) (tag, value string, ok bool) {
	line = strings.TrimRight(line, "\r")
	if len(line) < 2 {
		return "", "", false
	}
	tag = line[:2]
	if !isTag(tag) {
		return "", "", false
	}
	rest := strings.TrimLeft(line[2:], " ")
	if !strings.HasPrefix(rest, "-") {
		return "", "", false
	}
	return tag, strings.TrimSpace(rest[1:]), true
}

func isTag(s string) bool {
	return s[0] >= 'A' && s[0] <= 'Z' && ((s[1] >= 'A' && s[1] <= 'Z') || (s[1] >= '0' && s[1] <= '9'))
}

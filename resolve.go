package monitor

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Resolver finds the download URL of a source that publishes a fresh
// filename every period. The landing page scan is the primary route; when
// it yields nothing the resolver walks backward month by month, probing
// candidate URLs until one exists.
type Resolver struct {
	Fetcher *Fetcher
	Landing string
	// Pattern matches a link href; its first capture group must sort
	// chronologically (a period stamp embedded in the filename).
	Pattern *regexp.Regexp
	// Candidate builds the expected URL for a given month.
	Candidate func(month date.Date) string
	// Lookback bounds the backward walk, in months. Zero means 24.
	Lookback int
}

// Resolve returns the newest available download URL. It fails only when
// the page scan finds no link and no candidate in the lookback window
// exists.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if addr, err := r.scan(ctx); err == nil {
		return addr, nil
	} else {
		log.Printf("landing scan of %v failed, probing candidates: %v", r.Landing, err)
	}
	lookback := r.Lookback
	if lookback == 0 {
		lookback = 24
	}
	month := date.Today().StartOfMonth()
	for i := 0; i < lookback; i++ {
		addr := r.Candidate(month.AddMonths(-i))
		if r.Fetcher.Probe(ctx, addr) {
			return addr, nil
		}
	}
	return "", fmt.Errorf("no release found for %v within %d months", r.Landing, lookback)
}

// scan pulls the landing page and returns the matching link with the
// highest period stamp.
func (r *Resolver) scan(ctx context.Context) (string, error) {
	body, err := r.Fetcher.Blob(ctx, r.Landing)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("cannot parse landing page %v: %w", r.Landing, err)
	}
	var best, bestStamp string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := r.Pattern.FindStringSubmatch(href)
		if m == nil || len(m) < 2 {
			return
		}
		if m[1] > bestStamp {
			best, bestStamp = href, m[1]
		}
	})
	if best == "" {
		return "", fmt.Errorf("no link matching %v on %v", r.Pattern, r.Landing)
	}
	return r.absolute(best)
}

func (r *Resolver) absolute(href string) (string, error) {
	base, err := url.Parse(r.Landing)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

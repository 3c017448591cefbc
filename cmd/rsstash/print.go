package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tesso57/rsstash/internal/domain/news"
)

type jsonLink struct {
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	URL      string `json:"url"`
	Label    string `json:"label,omitempty"`
}

type jsonItem struct {
	Title string     `json:"title"`
	Link  string     `json:"link"`
	Date  string     `json:"date,omitempty"`
	Body  string     `json:"body"`
	Links []jsonLink `json:"links,omitempty"`
}

type jsonGroup struct {
	Feed   string     `json:"feed"`
	Source string     `json:"source"`
	Items  []jsonItem `json:"items"`
}

// printGroups renders query or refresh results. The reader's link
// tables are only read from here, never mutated.
func printGroups(w io.Writer, groups []news.FeedGroup, asJSON bool) error {
	if asJSON {
		return printJSON(w, groups)
	}
	printText(w, groups)
	return nil
}

func printJSON(w io.Writer, groups []news.FeedGroup) error {
	out := make([]jsonGroup, 0, len(groups))
	for _, g := range groups {
		jg := jsonGroup{Feed: g.Title, Source: g.Source, Items: make([]jsonItem, 0, len(g.Items))}
		for _, item := range g.Items {
			ji := jsonItem{
				Title: item.Title,
				Link:  item.Link,
				Date:  item.PublishedDisplay,
				Body:  item.Body,
			}
			for pos, entry := range item.Links.Entries() {
				ji.Links = append(ji.Links, jsonLink{
					Position: pos + 1,
					Kind:     string(entry.Kind),
					URL:      entry.URL,
					Label:    entry.Label,
				})
			}
			jg.Items = append(jg.Items, ji)
		}
		out = append(out, jg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printText(w io.Writer, groups []news.FeedGroup) {
	for gi, g := range groups {
		if gi > 0 {
			fmt.Fprintln(w)
		}
		if g.Title != "" {
			fmt.Fprintf(w, "%s (%s)\n", g.Title, g.Source)
		} else {
			fmt.Fprintln(w, g.Source)
		}

		for _, item := range g.Items {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  %s\n", item.Title)
			if item.PublishedDisplay != "" {
				fmt.Fprintf(w, "  Date: %s\n", item.PublishedDisplay)
			}
			fmt.Fprintf(w, "  Link: %s\n", item.Link)
			if item.Body != "" {
				fmt.Fprintf(w, "\n  %s\n", item.Body)
			}
			if item.Links.Len() > 0 {
				fmt.Fprintln(w)
				for pos, entry := range item.Links.Entries() {
					fmt.Fprintf(w, "  [%d] %s (%s)\n", pos+1, entry.URL, entry.Kind)
				}
			}
		}
	}
}

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SourcePost is a HackerNews item (story or comment) as returned by the
// Firebase API.
type SourcePost struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	Time    int64  `json:"time"`
	Parent  int    `json:"parent"`
	Kids    []int  `json:"kids"`
	By      string `json:"by"`
	Deleted bool   `json:"deleted"`
	Dead    bool   `json:"dead"`
}

func (p SourcePost) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

func (p *SourcePost) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}

// RedditListing is the payload of a subreddit new-listings endpoint.
type RedditListing struct {
	Data struct {
		Children []struct {
			Data RedditSubmission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// RedditSubmission is a single Reddit post.
type RedditSubmission struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
	Subreddit  string  `json:"subreddit"`
	Author     string  `json:"author"`
	CreatedUTC float64 `json:"created_utc"`
}

// ToJobPosting converts a Reddit submission into an unenriched posting.
func (s *RedditSubmission) ToJobPosting() *JobPosting {
	url := s.URL
	if url == "" {
		url = fmt.Sprintf("https://www.reddit.com%s", s.Permalink)
	}
	return &JobPosting{
		URL:          url,
		Title:        s.Title,
		Description:  s.SelfText,
		Subreddit:    s.Subreddit,
		Author:       s.Author,
		Source:       SourceReddit,
		SourceID:     s.ID,
		CreatedUTC:   int64(s.CreatedUTC),
		DiscoveredAt: time.Now().UTC(),
	}
}

// IntSlice is a list of HackerNews item IDs, cacheable as a binary value.
type IntSlice []int

func (s IntSlice) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *IntSlice) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}

package models

import "time"

// Channel is a single catalog record describing one broadcast channel.
type Channel struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Category    string    `json:"category" yaml:"category"`
	Language    string    `json:"language" yaml:"language"`
	Country     string    `json:"country" yaml:"country"`
	StreamURL   string    `json:"stream_url" yaml:"stream_url"`
	LogoURL     *string   `json:"logo_url" yaml:"logo_url"`
	Description *string   `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// ChannelFacets holds the columns the statistics scan reads for one channel.
type ChannelFacets struct {
	Category string
	Language string
	Country  string
}

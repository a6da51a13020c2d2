package domain

import "time"

type Book struct {
	ID            string
	Title         string
	Author        string
	Publisher     string
	PublishedDate time.Time
	PageCount     int
	Language      string
	OwnerID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Review struct {
	ID        string
	Rating    int
	Text      string
	BookID    string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

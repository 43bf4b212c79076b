package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EpisodeID uint      `gorm:"not null;index" json:"episode_id"`
	Episode   *Episode  `gorm:"foreignKey:EpisodeID" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	Rate      int       `gorm:"not null;default:0" json:"rate"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SetAuthor is only meant to be called before the comment is created.
func (c *Comment) SetAuthor(u *User) {
	c.Author = u
	if u != nil {
		c.AuthorID = u.ID
	}
}

func (c *Comment) SetEpisode(e *Episode) {
	c.Episode = e
	if e != nil {
		c.EpisodeID = e.ID
	}
}

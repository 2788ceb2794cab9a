package models

// NewsArticleModel stores a news article shown on the latest-news page.
type NewsArticleModel struct {
	Base
	Title    string `json:"title"    gorm:"not null"`
	Content  string `json:"content"  gorm:"type:text;not null"`
	ImageURL string `json:"imageUrl" gorm:"size:500;not null"`
}

func (NewsArticleModel) TableName() string { return "news_articles" }

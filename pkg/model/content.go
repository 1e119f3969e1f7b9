package model

import "time"

type CompanyDetails struct {
	Logo           string  `json:"logo" bson:"logo" yaml:"logo"`
	LogoName       string  `json:"logo_name" bson:"logo_name" yaml:"logo_name"`
	TopHeader      string  `json:"top_header" bson:"top_header" yaml:"top_header"`
	Header         string  `json:"header" bson:"header" yaml:"header"`
	SubHeader      string  `json:"sub_header" bson:"sub_header" yaml:"sub_header"`
	Background     string  `json:"background" bson:"background" yaml:"background"`
	AboutUsPic     string  `json:"about_us_pic" bson:"about_us_pic" yaml:"about_us_pic"`
	AboutUsDetails string  `json:"about_us_details" bson:"about_us_details" yaml:"about_us_details"`
	FacebookLink   *string `json:"fb_link" bson:"fb_link" yaml:"fb_link"`
	InstagramLink  *string `json:"insta_link" bson:"insta_link" yaml:"insta_link"`
	TikTokLink     *string `json:"tiktok_link" bson:"tiktok_link" yaml:"tiktok_link"`
	Email          string  `json:"email" bson:"email" yaml:"email"`
	PhoneNumber    string  `json:"phone_number" bson:"phone_number" yaml:"phone_number"`
	Location       string  `json:"location" bson:"location" yaml:"location"`
}

func (c *CompanyDetails) Contact() ContactData {
	return ContactData{
		Email:         c.Email,
		PhoneNumber:   c.PhoneNumber,
		Location:      c.Location,
		FacebookLink:  c.FacebookLink,
		InstagramLink: c.InstagramLink,
		TikTokLink:    c.TikTokLink,
	}
}

type PortfolioCategory struct {
	ID               int64  `json:"id" bson:"_id" yaml:"id"`
	Name             string `json:"name" bson:"name" yaml:"name"`
	IsFeaturedOnHome bool   `json:"is_featured_in_home_page" bson:"is_featured_in_home_page" yaml:"is_featured_in_home_page"`
}

// PortfolioItem is a media asset. The category is stored denormalized on the item.
type PortfolioItem struct {
	ID               int64             `json:"id" bson:"_id" yaml:"id"`
	Category         PortfolioCategory `json:"category" bson:"category" yaml:"category"`
	File             string            `json:"file" bson:"file" yaml:"file"`
	FileType         string            `json:"file_type" bson:"file_type" yaml:"file_type"`
	Priority         int               `json:"priority" bson:"priority" yaml:"priority"`
	IsFeaturedOnHome bool              `json:"is_featured_in_home_page" bson:"is_featured_in_home_page" yaml:"is_featured_in_home_page"`
	CreatedAt        time.Time         `json:"created_at" bson:"created_at" yaml:"created_at"`
}

type Service struct {
	ID            int64     `json:"id" bson:"_id" yaml:"id"`
	Name          string    `json:"name" bson:"name" yaml:"name"`
	Description   string    `json:"description" bson:"description" yaml:"description"`
	StartingPrice string    `json:"starting_price" bson:"starting_price" yaml:"starting_price"`
	Priority      int       `json:"priority" bson:"priority" yaml:"priority"`
	IsFeatured    bool      `json:"is_featured" bson:"is_featured" yaml:"is_featured"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" yaml:"created_at"`
}

type HomePageData struct {
	CompanyDetails      CompanyDetails      `json:"company_details"`
	PortfolioCategories []PortfolioCategory `json:"portfolio_categories"`
	PortfolioItems      []PortfolioItem     `json:"portfolio_items"`
	Services            []Service           `json:"services"`
}

type ContactData struct {
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phone_number"`
	Location      string  `json:"location"`
	FacebookLink  *string `json:"fb_link"`
	InstagramLink *string `json:"insta_link"`
	TikTokLink    *string `json:"tiktok_link"`
}

// Envelope is the {success, data} wrapper used by the read endpoints.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// PageInfo carries the pagination members shared by the list endpoints.
type PageInfo struct {
	Count       int64   `json:"count"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	CurrentPage int     `json:"current_page"`
	TotalPages  int     `json:"total_pages"`
}

type PortfolioPage struct {
	Success bool `json:"success"`
	PageInfo
	Results         []PortfolioItem     `json:"results"`
	Categories      []PortfolioCategory `json:"categories"`
	CurrentCategory *int64              `json:"current_category"`
}

type ServicesPage struct {
	Success bool `json:"success"`
	PageInfo
	Results []Service `json:"results"`
}

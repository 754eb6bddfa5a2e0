package ports

// ArticleNavigator routes node actions to the article pages
type ArticleNavigator interface {
	// OpenArticle shows the article in the viewer
	OpenArticle(articleID string) error

	// EditArticle opens the article in the content editor
	EditArticle(articleID string) error
}

package postservice

import (
	"github.com/deverhart/folio/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
}

func validateExcerpt(v *common.Validator, excerpt string) {
	v.Check(excerpt != "", "excerpt", "must be provided")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateCategory(v *common.Validator, category string) {
	v.Check(category != "", "category", "must be provided")
	if category != "" {
		v.Check(v.CheckPermitted(category, Categories), "category", "must be a valid category")
	}
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(author != "", "author", "must be provided")
}

func validateID(v *common.Validator, id string) {
	v.Check(id != "", "id", "must be provided")
}

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
}

package controllers

import (
	"errors"

	"github.com/decoderzhub/snapreme/app/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HandleCreatorProfile returns a creator's public profile with their
// recent posts. Premium media URLs are withheld; unlocking goes through
// checkout.
func HandleCreatorProfile(c *fiber.Ctx) error {
	handle := c.Params("handle")
	repos := repository.GetGlobalRepositories()

	creator, err := repos.Creator.GetByHandle(handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal", "something went wrong")
	}

	posts, err := repos.Content.ListPostsByCreator(creator.ID, c.QueryInt("offset", 0), c.QueryInt("limit", 20))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal", "something went wrong")
	}
	for i := range posts {
		if posts[i].IsPremium {
			posts[i].MediaURL = ""
		}
	}

	return c.JSON(fiber.Map{
		"creator": creator,
		"posts":   posts,
	})
}

package controllers

import (
	"github.com/decoderzhub/snapreme/app/repository"
	"github.com/decoderzhub/snapreme/internal/pkg/database"
	"github.com/decoderzhub/snapreme/internal/pkg/metrics/counter"
	"github.com/decoderzhub/snapreme/internal/pkg/spend"
	"github.com/decoderzhub/snapreme/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

type startThreadRequest struct {
	CreatorID uint `json:"creator_id"`
}

type sendMessageRequest struct {
	Text     string `json:"text"`
	Priority bool   `json:"priority"`
}

type sendTipRequest struct {
	TipCents int64 `json:"tip_cents"`
}

type sendGiftRequest struct {
	Emoji string `json:"emoji"`
}

// HandleStartThread opens (or returns) the caller's thread with a creator.
func HandleStartThread(c *fiber.Ctx) error {
	var req startThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}

	svc := spend.NewServiceFromDB(database.GetDB())
	thread, err := svc.StartThread(c.Context(), usercontext.GetUserID(c), req.CreatorID)
	if err != nil {
		return spendError(c, err)
	}
	return c.JSON(thread)
}

// HandleListThreads returns the caller's threads, latest activity first.
func HandleListThreads(c *fiber.Ctx) error {
	svc := spend.NewServiceFromDB(database.GetDB())
	threads, err := svc.ListThreads(c.Context(), usercontext.GetUserID(c))
	if err != nil {
		return spendError(c, err)
	}
	return c.JSON(fiber.Map{"threads": threads})
}

// HandleListMessages returns a page of a thread's messages.
func HandleListMessages(c *fiber.Ctx) error {
	threadID, err := c.ParamsInt("id")
	if err != nil || threadID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "bad thread id")
	}

	svc := spend.NewServiceFromDB(database.GetDB())
	msgs, err := svc.ListMessages(c.Context(), usercontext.GetUserID(c), uint(threadID),
		c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	if err != nil {
		return spendError(c, err)
	}
	return c.JSON(fiber.Map{"messages": msgs})
}

// HandleSendMessage posts a paid text message into a thread.
func HandleSendMessage(c *fiber.Ctx) error {
	threadID, err := c.ParamsInt("id")
	if err != nil || threadID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "bad thread id")
	}
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}

	svc := spend.NewServiceFromDB(database.GetDB())
	res, err := svc.SendMessage(c.Context(), usercontext.GetUserID(c), uint(threadID), req.Text, req.Priority)
	if err != nil {
		return spendError(c, err)
	}
	recordCreatorRevenue(res)
	return c.JSON(res)
}

// HandleSendTip posts a tip into a thread.
func HandleSendTip(c *fiber.Ctx) error {
	threadID, err := c.ParamsInt("id")
	if err != nil || threadID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "bad thread id")
	}
	var req sendTipRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}

	svc := spend.NewServiceFromDB(database.GetDB())
	res, err := svc.SendTip(c.Context(), usercontext.GetUserID(c), uint(threadID), req.TipCents)
	if err != nil {
		return spendError(c, err)
	}
	recordCreatorRevenue(res)
	return c.JSON(res)
}

// HandleSendGift posts a gift into a thread.
func HandleSendGift(c *fiber.Ctx) error {
	threadID, err := c.ParamsInt("id")
	if err != nil || threadID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "bad thread id")
	}
	var req sendGiftRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}

	svc := spend.NewServiceFromDB(database.GetDB())
	res, err := svc.SendGift(c.Context(), usercontext.GetUserID(c), uint(threadID), req.Emoji)
	if err != nil {
		return spendError(c, err)
	}
	recordCreatorRevenue(res)
	return c.JSON(res)
}

// recordCreatorRevenue feeds the Redis revenue counter; the periodic
// flush applies it to the creators table. If Redis is down the counter
// falls through to a direct DB increment so revenue is not lost.
func recordCreatorRevenue(res *spend.SendResult) {
	if res.CoinCost <= 0 {
		return
	}
	if err := counter.AddCreatorCoins(res.CreatorID, res.CoinCost); err != nil {
		_ = repository.GetGlobalRepositories().Creator.AddCoinRevenue(res.CreatorID, res.CoinCost)
	}
}

package handlers

import (
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cdx-web-scan/internal/api/presenters"
	"cdx-web-scan/internal/utils"
)

type (
	LogHandler interface {
		GetLog(c *fiber.Ctx) error
	}

	logHandler struct{}
)

func NewLogHandler() LogHandler {
	return &logHandler{}
}

// GetLog returns the last LOG_LINES_TO_SHOW lines of the application log as
// plain text, for the operator's log viewer tab.
func (h *logHandler) GetLog(c *fiber.Ctx) error {
	logFile := utils.GetConfig("CDX_WEB_SCAN_LOG_FILE")
	if logFile == "" {
		logFile = "./logs/app.log"
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, "log file not found", err)
	}

	lines, err := strconv.Atoi(utils.GetConfigDefault("LOG_LINES_TO_SHOW", "164"))
	if err != nil || lines < 1 {
		lines = 164
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(tailLines(string(content), lines))
}

func tailLines(content string, n int) string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n") + "\n"
}

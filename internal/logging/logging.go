package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/noteduco342/storyline-backend/internal/config"
	"github.com/sirupsen/logrus"
)

// New builds the process logger from config.
func New(cfg config.LogConfig) (*logrus.Logger, error) {
	return newWithOutput(cfg, os.Stdout)
}

func newWithOutput(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	if cfg.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}
	return l, nil
}

// AccessLog is the fiber request logger writing through l.
func AccessLog(l *logrus.Logger) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		TimeFormat: time.RFC3339,
		Output:     l.WriterLevel(logrus.InfoLevel),
	})
}

// ForRequest returns an entry tagged with the request id and caller, if any.
func ForRequest(l logrus.FieldLogger, c *fiber.Ctx) *logrus.Entry {
	fields := logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		fields["request_id"] = rid
	}
	if uid, ok := c.Locals("userID").(string); ok && uid != "" {
		fields["user_id"] = uid
	}
	return l.WithFields(fields)
}

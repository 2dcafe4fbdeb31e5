package api

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// requestBodyMaxSize bounds inbound JSON bodies. Task descriptions and
// comments are the largest expected payloads and stay far below this.
const requestBodyMaxSize = 1 << 20

// decodeBody strictly decodes the request body into dst: unknown fields are
// rejected and reads are capped at requestBodyMaxSize.
func decodeBody(c echo.Context, dst any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// errors.go
//
// A hierarchical PC component node tree data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of pcnodetree.
// pcnodetree is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// pcnodetree is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with pcnodetree.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/pcnodetree/internal/types"
	"github.com/localnerve/pcnodetree/internal/utils"
	"go.uber.org/zap"
)

// ErrorHandler maps errors to the standard error body. The cause chain is
// exposed as "detail" only when showDetail is set.
func ErrorHandler(showDetail bool, log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx, err error) error {
		var customErr *types.CustomError
		if errors.As(err, &customErr) {
			detail := ""
			if showDetail && customErr.Err != nil {
				detail = customErr.Err.Error()
			}
			return utils.CustomErrorResponse(c, customErr, detail)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return utils.ErrorResponse(c, fiberErr.Message, fiberErr.Code, httpErrorCode(fiberErr.Code))
		}

		log.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Error(err))

		body := types.NewError(&types.CustomError{
			Code: fiber.StatusInternalServerError,
			Type: types.TypeInternal,
		}, "Internal server error", err)
		detail := ""
		if showDetail {
			detail = err.Error()
		}
		return utils.CustomErrorResponse(c, body, detail)
	}
}

// httpErrorCode derives an error code from a status, e.g. 405 -> METHOD_NOT_ALLOWED
func httpErrorCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "HTTP_ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}

// NotFound answers requests that matched no route
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}

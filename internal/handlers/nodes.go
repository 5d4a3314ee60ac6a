// nodes.go
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
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/pcnodetree/internal/services"
	"github.com/localnerve/pcnodetree/internal/types"
	"github.com/localnerve/pcnodetree/internal/utils"
)

// NodeHandler serves the node tree routes
type NodeHandler struct {
	Service *services.NodeService
}

// CreateNodeRequest is the body of a node create
type CreateNodeRequest struct {
	Name     string  `json:"name" validate:"notblank,max=255"`
	ParentID *string `json:"parentId"`
}

// AddPropertyRequest is the body of a property upsert
type AddPropertyRequest struct {
	Key   string   `json:"key" validate:"notblank,max=255"`
	Value *float64 `json:"value" validate:"required"`
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return types.NewError(types.ErrValidation, "Invalid request body", err)
	}
	return validateRequest(out)
}

// CreateNode godoc
// @Summary Create a node
// @Description Creates a root node, or a child when parentId is given
// @Tags nodes
// @Accept json
// @Produce json
// @Param X-Api-Version header string false "API version" default(1.0.0)
// @Param node body CreateNodeRequest true "Node to create"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct "Parent not found"
// @Failure 409 {object} utils.ErrorResponseStruct "Duplicate name"
// @Security BearerAuth
// @Router /nodes [post]
func (h *NodeHandler) CreateNode(c *fiber.Ctx) error {
	var req CreateNodeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	node, err := h.Service.CreateNode(c.UserContext(), req.Name, req.ParentID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, node, fiber.StatusCreated)
}

// AddProperty godoc
// @Summary Set a property
// @Description Creates the property, or replaces the value of an existing property with the same key
// @Tags nodes
// @Accept json
// @Produce json
// @Param X-Api-Version header string false "API version" default(1.0.0)
// @Param nodeId path string true "Node id"
// @Param property body AddPropertyRequest true "Property to set"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct "Node not found"
// @Security BearerAuth
// @Router /nodes/{nodeId}/properties [post]
func (h *NodeHandler) AddProperty(c *fiber.Ctx) error {
	var req AddPropertyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	nodeID := strings.Clone(c.Params("nodeId"))
	prop, err := h.Service.AddProperty(c.UserContext(), nodeID, req.Key, *req.Value)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, prop, fiber.StatusCreated)
}

// GetSubtree godoc
// @Summary Get a subtree by node id
// @Tags nodes
// @Produce json
// @Param X-Api-Version header string false "API version" default(1.0.0)
// @Param nodeId path string true "Node id"
// @Success 200 {object} utils.PathResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct "Node not found"
// @Security BearerAuth
// @Router /nodes/{nodeId} [get]
func (h *NodeHandler) GetSubtree(c *fiber.Ctx) error {
	nodeID := strings.Clone(c.Params("nodeId"))
	tree, err := h.Service.GetSubtree(c.UserContext(), nodeID)
	if err != nil {
		return err
	}
	return utils.PathResponse(c, string(services.ResolvedNode), tree)
}

// ResolvePath godoc
// @Summary Resolve a path
// @Description Resolves a slash delimited path such as AlphaPC/Processing/CPU/Cores to a subtree or a property
// @Tags paths
// @Produce json
// @Param X-Api-Version header string false "API version" default(1.0.0)
// @Param q query string true "Path"
// @Success 200 {object} utils.PathResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct "Invalid path"
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct "Path not found"
// @Security BearerAuth
// @Router /paths [get]
func (h *NodeHandler) ResolvePath(c *fiber.Ctx) error {
	path := strings.Clone(c.Query("q"))
	res, err := h.Service.ResolvePath(c.UserContext(), path)
	if err != nil {
		return err
	}
	return utils.PathResponse(c, string(res.Kind), res.Data())
}

package servicerequest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainsr "github.com/alanyang/roadside-relay/internal/domain/servicerequest"
	srsvc "github.com/alanyang/roadside-relay/internal/service/servicerequest"
)

// Register mounts the submission endpoint at the path existing clients use,
// plus read-only lookups under /services.
func Register(r gin.IRouter, svc *srsvc.Service) {
	r.POST("/add-service", createServiceRequest(svc))

	rg := r.Group("/services")
	rg.GET("", listServiceRequests(svc))
	rg.GET("/:id", getServiceRequest(svc))
}

// scalar accepts a JSON string, number or boolean and keeps its text form,
// so a client posting "timestamp": 1697530000 stores "1697530000".
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = scalar(x)
	case json.Number:
		*s = scalar(x.String())
	case bool:
		*s = scalar(strconv.FormatBool(x))
	default:
		return fmt.Errorf("expected a string, number or boolean, got %s", data)
	}
	return nil
}

type createServiceRequestReq struct {
	ID        scalar `json:"id" binding:"required"`
	UserID    scalar `json:"userId" binding:"required"`
	Model     scalar `json:"model" binding:"required"`
	Type      scalar `json:"type" binding:"required"`
	Location  scalar `json:"location" binding:"required"`
	Timestamp scalar `json:"timestamp" binding:"required"`
}

func errorBody(status int, err error) gin.H {
	return gin.H{"error": http.StatusText(status), "details": err.Error()}
}

// createServiceRequest answers every failed submission, an invalid body
// included, with 500 {"error":"Internal Server Error","details":...}.
func createServiceRequest(svc *srsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createServiceRequestReq
		if err := c.ShouldBindJSON(&req); err != nil {
			submitFailed(c, fmt.Errorf("%w: %w", domainsr.ErrInvalid, err))
			return
		}

		r := domainsr.New(string(req.ID), string(req.UserID), string(req.Model),
			string(req.Type), string(req.Location), string(req.Timestamp))
		created, err := svc.Submit(c.Request.Context(), r)
		if err != nil {
			submitFailed(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func submitFailed(c *gin.Context, err error) {
	c.Error(err) //nolint:errcheck
	c.JSON(http.StatusInternalServerError, errorBody(http.StatusInternalServerError, err))
}

func getServiceRequest(svc *srsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domainsr.ErrNotFound) {
				c.JSON(http.StatusNotFound, errorBody(http.StatusNotFound, err))
				return
			}
			c.JSON(http.StatusInternalServerError, errorBody(http.StatusInternalServerError, err))
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func listServiceRequests(svc *srsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filters domainsr.ListFilters

		if v := c.Query("userId"); v != "" {
			filters.UserID = &v
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest), "details": "invalid limit"})
				return
			}
			filters.Limit = n
		}

		out, err := svc.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorBody(http.StatusInternalServerError, err))
			return
		}
		if out == nil {
			out = []domainsr.ServiceRequest{}
		}
		c.JSON(http.StatusOK, out)
	}
}

package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	offsetQueryParameterConstant = "offset"
	defaultOffsetConstant        = "0"
	authorParameterConstant      = "author"
	weekParameterConstant        = "week"
	invalidOffsetMessageConstant = "offset must be a non-negative integer"
	missingAuthorMessageConstant = "author is required"
)

func (server *Server) handleWeek(ginContext *gin.Context) {
	offset, parseError := strconv.Atoi(ginContext.DefaultQuery(offsetQueryParameterConstant, defaultOffsetConstant))
	if parseError != nil || offset < 0 {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": invalidOffsetMessageConstant})
		return
	}
	ginContext.JSON(http.StatusOK, gin.H{"week": server.queries.GetWeekIdentifier(offset)})
}

func (server *Server) handleWeekTaskGroups(ginContext *gin.Context) {
	author := strings.TrimSpace(ginContext.Param(authorParameterConstant))
	if len(author) == 0 {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": missingAuthorMessageConstant})
		return
	}
	ginContext.JSON(http.StatusOK, server.queries.GetTaskGroups(author, ginContext.Param(weekParameterConstant)))
}

func (server *Server) handleAllTaskGroups(ginContext *gin.Context) {
	author := strings.TrimSpace(ginContext.Param(authorParameterConstant))
	if len(author) == 0 {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": missingAuthorMessageConstant})
		return
	}
	ginContext.JSON(http.StatusOK, server.queries.GetAllTaskGroups(author))
}

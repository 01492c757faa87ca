package balance

import (
	"errors"
	"keyshop-backend/internal/models"
	"keyshop-backend/internal/services"
	"keyshop-backend/internal/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return models.User{}, false
	}
	u, ok := userVal.(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return models.User{}, false
	}
	return u, true
}

// GetBalance godoc
// @Summary Get the balance
// @Tags balance
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=BalanceResponse}
// @Failure 401 {object} utils.Response
// @Router /balance [get]
func GetBalance(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	bal, err := services.GetBalance(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch balance"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", BalanceResponse{Balance: bal}))
}

// Deposit godoc
// @Summary Deposit funds
// @Description Credit the balance and append a DEPOSIT ledger row
// @Tags balance
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body DepositRequest true "Amount and payment method"
// @Success 200 {object} utils.Response{data=BalanceResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /balance/deposit [post]
func Deposit(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	var req DepositRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	newBalance, err := services.Deposit(u.ID, req.Amount, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to deposit"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balance deposited successfully", BalanceResponse{Balance: newBalance}))
}

// ListTransactions godoc
// @Summary List balance transactions
// @Description Get the user's most recent ledger rows, newest-first
// @Tags balance
// @Produce json
// @Security Bearer
// @Param limit query int false "Max rows" default(50)
// @Success 200 {object} utils.Response{data=TransactionListResponse}
// @Failure 401 {object} utils.Response
// @Router /balance/transactions [get]
func ListTransactions(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if limitStr, exists := c.GetQuery("limit"); exists {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit"))
			return
		}
		limit = parsed
	}

	transactions, err := services.ListUserTransactions(u.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch transactions"))
		return
	}

	items := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, TransactionResponse{
			ID:            t.ID,
			Amount:        t.Amount,
			BalanceBefore: t.BalanceBefore,
			BalanceAfter:  t.BalanceAfter,
			Type:          t.Type,
			Description:   t.Description,
			CreatedAt:     t.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", TransactionListResponse{Transactions: items}))
}

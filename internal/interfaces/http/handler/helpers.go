package handler

import (
	appfinance "github.com/garagehub/backend/internal/application/finance"
	appgarage "github.com/garagehub/backend/internal/application/garage"
	appidentity "github.com/garagehub/backend/internal/application/identity"
	appinventory "github.com/garagehub/backend/internal/application/inventory"
	"github.com/garagehub/backend/internal/interfaces/http/dto"
)

func metaFromIdentity(m appidentity.ListMeta) dto.Meta {
	return dto.Meta{Page: m.Page, Limit: m.Limit, Total: m.Total, TotalPage: m.TotalPage}
}

func metaFromFinance(m appfinance.ListMeta) dto.Meta {
	return dto.Meta{Page: m.Page, Limit: m.Limit, Total: m.Total, TotalPage: m.TotalPage}
}

func metaFromInventory(m appinventory.ListMeta) dto.Meta {
	return dto.Meta{Page: m.Page, Limit: m.Limit, Total: m.Total, TotalPage: m.TotalPage}
}

func metaFromGarage(m appgarage.ListMeta) dto.Meta {
	return dto.Meta{Page: m.Page, Limit: m.Limit, Total: m.Total, TotalPage: m.TotalPage}
}

package mappers

import (
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/models"
)

// ToDomainSettlementLog конвертирует модель в доменный объект
func ToDomainSettlementLog(model *models.SettlementLogModel) *domain.SettlementLog {
	if model == nil {
		return nil
	}

	log := &domain.SettlementLog{
		ID: model.ID,
		Source: model.Source,
		GatewayTxnID: model.GatewayTxnID,
		Amount: model.Amount,
		Content: model.Content,
		PayerAccount: model.PayerAccount,
		PayerName: model.PayerName,
		BankCode: model.BankCode,
		Outcome: model.Outcome,
		ReferenceCode: model.ReferenceCode,
		Candidates: model.Candidates,
		ErrorMessage: model.ErrorMessage,
		ProcessingTime: model.ProcessingTime,
		ReceivedAt: model.ReceivedAt,
		CreatedAt: model.CreatedAt,
	}
	if model.TransactionID != nil {
		log.TransactionID = *model.TransactionID
	}
	return log
}

// ToModelSettlementLog конвертирует доменный объект в модель
func ToModelSettlementLog(log *domain.SettlementLog) *models.SettlementLogModel {
	if log == nil {
		return nil
	}

	return &models.SettlementLogModel{
		ID: log.ID,
		Source: log.Source,
		GatewayTxnID: log.GatewayTxnID,
		Amount: log.Amount,
		Content: log.Content,
		PayerAccount: log.PayerAccount,
		PayerName: log.PayerName,
		BankCode: log.BankCode,
		ReceivedAt: log.ReceivedAt,
		Outcome: log.Outcome,
		TransactionID: optionalString(log.TransactionID),
		ReferenceCode: log.ReferenceCode,
		Candidates: log.Candidates,
		ErrorMessage: log.ErrorMessage,
		ProcessingTime: log.ProcessingTime,
		CreatedAt: log.CreatedAt,
	}
}

func ToDomainBankProfile(model *models.BankProfileModel) *domain.BankProfile {
	return &domain.BankProfile{
		ID: model.ID,
		Code: model.Code,
		Name: model.Name,
		Bin: model.Bin,
		AccountNo: model.AccountNo,
		AccountName: model.AccountName,
		Visible: model.Visible,
	}
}

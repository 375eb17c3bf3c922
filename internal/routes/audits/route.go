package audits

import (
	"context"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/routes"
	"fridgepick.pl/api/internal/routes/util"
	"github.com/aws/aws-lambda-go/events"
)

type AuditService struct {
	data data.AuditRepository
}

func NewRoute(data data.AuditRepository) routes.Service {
	return &AuditService{
		data: data,
	}
}

func NewAudit(auditDTO data.AuditDTO) Audit {
	return Audit{
		CreateTime:   auditDTO.CreateTime,
		UpdateTime:   auditDTO.UpdateTime,
		Action:       auditDTO.Action,
		ResourceType: auditDTO.ResourceType,
		ResourceId:   auditDTO.ResourceId,
		Message:      auditDTO.Message,
		NewValues:    auditDTO.NewValues,
		OldValues:    auditDTO.OldValues,
		Id:           auditDTO.SK,
	}
}

func (as *AuditService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/audits":             util.AuthorizedRoute(as.ListAudits),
		"DELETE:/audits/:auditId": util.AuthorizedRoute(as.DeleteAudit),
	}
}

func (as *AuditService) ListAudits(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(as.data, NewAudit, event, ctx)
}

func (as *AuditService) DeleteAudit(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := as.data.Delete(ctx, util.Username(ctx), util.RequestParam(ctx, "auditId"))
	return util.SerializeResponseNoContent(err)
}

package rest

import "github.com/emicklei/go-restful"

// GetQuota returns the current ledger snapshot so clients can decide
// whether to start an expensive analysis.
func (a *API) GetQuota(req *restful.Request, resp *restful.Response) {
	resp.WriteAsJson(a.svc.Ledger().Status())
}

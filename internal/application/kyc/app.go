package kycapp

import (
	kyccmd "github.com/redacok/redacok-backend/internal/application/kyc/cmd"
	kycquery "github.com/redacok/redacok-backend/internal/application/kyc/query"
)

type App struct {
	CMD   Command
	Query Query
}

type Command struct {
	Submit  *kyccmd.SubmitHandler
	Approve *kyccmd.ApproveHandler
	Reject  *kyccmd.RejectHandler
}

type Query struct {
	Get *kycquery.GetHandler
}

// Repo is the full request store surface the app needs; commands and queries
// each declare the slice they use.
type Repo interface {
	kyccmd.Repo
	kycquery.Repo
}

type Args struct {
	Repo     Repo
	UserRepo kyccmd.UserRepo
	Storage  kyccmd.FileStorage
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			Submit: kyccmd.NewSubmitHandler(kyccmd.SubmitHandlerArgs{
				Repo:    args.Repo,
				Storage: args.Storage,
			}),
			Approve: kyccmd.NewApproveHandler(kyccmd.ApproveHandlerArgs{
				Repo:     args.Repo,
				UserRepo: args.UserRepo,
			}),
			Reject: kyccmd.NewRejectHandler(kyccmd.RejectHandlerArgs{
				Repo: args.Repo,
			}),
		},
		Query: Query{
			Get: kycquery.NewGetHandler(kycquery.GetHandlerArgs{
				Repo: args.Repo,
			}),
		},
	}
}

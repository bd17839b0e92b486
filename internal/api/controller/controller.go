package controller

import (
	"github.com/ougirez/wagedash/internal/service/wage"
)

type Controller struct {
	service *wage.Service
}

func NewController(service *wage.Service) *Controller {
	return &Controller{service: service}
}

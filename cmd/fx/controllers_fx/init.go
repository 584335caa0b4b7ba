package controllers_fx

import (
	"go.uber.org/fx"

	"roamio/internal/api/controllers"
)

var Module = fx.Provide(
	controllers.NewPlacesController,
	controllers.NewRecommendationsController,
	controllers.NewOpsController)

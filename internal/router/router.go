package router

import (
	"time"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/config"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/handler"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/middleware"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/repository"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/service"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	materiaRepo := repository.NewMateriaPrimaRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	listaRepo := repository.NewListaPrecioRepository(db)
	historialRepo := repository.NewHistorialPrecioRepository(db)
	comboRepo := repository.NewComboRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, materiaRepo, recetaRepo, comboRepo)
	materiaSvc := service.NewMateriaPrimaService(materiaRepo, recetaRepo)
	listaSvc := service.NewListaPrecioService(listaRepo)
	precioSvc := service.NewPrecioService(listaRepo, productoRepo, historialRepo)
	comboSvc := service.NewComboService(comboRepo, productoRepo)
	stockSvc := service.NewStockService(productoRepo, materiaRepo, recetaRepo, movimientoRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo, productoRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, comboRepo, listaRepo, precioSvc, stockSvc, dispatcher)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, listaRepo, precioSvc, stockSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	materiasH := handler.NewMateriasPrimasHandler(materiaSvc, stockSvc)
	listasH := handler.NewListasPreciosHandler(listaSvc, precioSvc)
	historialH := handler.NewHistorialPreciosHandler(precioSvc)
	combosH := handler.NewCombosHandler(comboSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	inventarioH := handler.NewInventarioHandler(stockSvc)
	catalogoH := handler.NewCatalogoHandler(categoriaSvc, proveedorSvc)
	consultaH := handler.NewConsultaPreciosHandler(precioSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required, read only
	r.GET("/v1/precios/:codigo", consultaH.ConsultarPorCodigo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Settlement — any authenticated role can operate the till
		operar := middleware.RequireRole("cajero", "supervisor", "administrador")

		v1.POST("/ventas", operar, ventasH.Registrar)
		v1.GET("/ventas", operar, ventasH.Listar)
		v1.GET("/ventas/:id", operar, ventasH.Obtener)

		v1.POST("/pedidos", operar, pedidosH.Crear)
		v1.GET("/pedidos", operar, pedidosH.Listar)
		v1.GET("/pedidos/:id", operar, pedidosH.Obtener)
		v1.PATCH("/pedidos/:id/estado", operar, pedidosH.CambiarEstado)

		// Catalog reads for the till
		v1.GET("/productos", operar, productosH.Listar)
		v1.GET("/productos/:id", operar, productosH.Obtener)
		v1.GET("/productos/:id/receta", operar, productosH.ObtenerReceta)
		v1.GET("/productos/:id/historial-precios", operar, historialH.PorProducto)
		v1.GET("/combos", operar, combosH.Listar)
		v1.GET("/combos/:id", operar, combosH.Obtener)
		v1.POST("/combos/:id/expandir", operar, combosH.Expandir)
		v1.GET("/listas-precios", operar, listasH.Listar)
		v1.GET("/listas-precios/:id/precios", operar, listasH.ListarPrecios)
		v1.GET("/categorias", operar, catalogoH.ListarCategorias)

		// Catalog writes — administrador only
		admin := middleware.RequireRole("administrador")

		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
			prods.PUT("/:id/receta", productosH.GuardarReceta)
		}

		combos := v1.Group("/combos", admin)
		{
			combos.POST("", combosH.Crear)
			combos.PUT("/:id", combosH.Actualizar)
			combos.DELETE("/:id", combosH.Desactivar)
		}

		// Pricing — supervisor can fix prices, only administrador touches lists
		listas := v1.Group("/listas-precios")
		{
			listas.POST("", admin, listasH.Crear)
			listas.PUT("/:id", admin, listasH.Actualizar)
			listas.DELETE("/:id", admin, listasH.Eliminar)
			listas.PUT("/:id/precios", middleware.RequireRole("supervisor", "administrador"), listasH.FijarPrecio)
			listas.POST("/:id/actualizacion-masiva", admin, listasH.ActualizacionMasiva)
			listas.POST("/:id/reresolver", operar, listasH.ReresolverPrecios)
		}

		mats := v1.Group("/materias-primas", middleware.RequireRole("supervisor", "administrador"))
		{
			mats.POST("", materiasH.Crear)
			mats.GET("", materiasH.Listar)
			mats.GET("/:id", materiasH.Obtener)
			mats.PUT("/:id", materiasH.Actualizar)
			mats.DELETE("/:id", materiasH.Desactivar)
			mats.POST("/:id/compras", materiasH.RegistrarCompra)
			mats.GET("/:id/movimientos", materiasH.Movimientos)
		}

		inv := v1.Group("/inventario", middleware.RequireRole("supervisor", "administrador"))
		{
			inv.POST("/productos/:id/ajuste", inventarioH.AjusteManual)
			inv.POST("/productos/:id/compras", inventarioH.CompraProducto)
			inv.GET("/movimientos", inventarioH.Movimientos)
		}

		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", catalogoH.CrearCategoria)
			categorias.PUT("/:id", catalogoH.ActualizarCategoria)
			categorias.DELETE("/:id", catalogoH.DesactivarCategoria)
		}

		prov := v1.Group("/proveedores", admin)
		{
			prov.POST("", catalogoH.CrearProveedor)
			prov.GET("", catalogoH.ListarProveedores)
			prov.GET("/:id", catalogoH.ObtenerProveedor)
			prov.PUT("/:id", catalogoH.ActualizarProveedor)
			prov.DELETE("/:id", catalogoH.DesactivarProveedor)
			prov.GET("/:id/historial-precios", historialH.PorProveedor)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// cmd/seeduser/main.go — Crea/actualiza usuario de demo.
// Uso: go run cmd/seeduser/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/infra"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func main() {
	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "kiosco.db"
	}
	username := "admin"
	password := "1234"
	nombre := "Admin Demo"
	rol := "administrador"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := infra.NewDatabase(path)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}

	user := model.Usuario{
		Username:     username,
		Nombre:       nombre,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "nombre", "rol", "activo"}),
	}).Create(&user)

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("Usuario '%s' creado/actualizado con password '%s'\n", username, password)
}

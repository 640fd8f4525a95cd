package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/config"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/db"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"github.com/xuri/excelize/v2"
)

// 고객/패턴 초기 데이터 임포트 도구.
// XLSX 컬럼: 고객명, 주소, 전화, 코스명, 순번, 상품명, 요일(1,3,5), 수량, 단가, 시작일(YYYY-MM-DD)
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := seedAdminOperator(); err != nil {
		log.Fatal("Failed to seed admin operator:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total rows to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported, skipped := importRows(rows)
	fmt.Println("Import completed successfully!")
	fmt.Printf("Imported: %d, skipped: %d\n", imported, skipped)
}

// seedAdminOperator 최초 로그인용 관리자 계정. 이미 있으면 건너뛴다.
func seedAdminOperator() error {
	var count int64
	if err := db.GetDB().Model(&model.Operator{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		fmt.Println("SEED_ADMIN_PASSWORD not set, using default password (change it after login)")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.Operator{
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "관리자",
		Role:         model.RoleAdmin,
	}
	if err := db.GetDB().Create(admin).Error; err != nil {
		return err
	}
	fmt.Printf("Admin operator created: %s\n", admin.Email)
	return nil
}

func readRows(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}
	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	// 첫 행은 헤더
	fmt.Printf("Headers: %v\n", rows[0])
	return rows[1:], nil
}

func importRows(rows [][]string) (imported, skipped int) {
	gdb := db.GetDB()
	courseIDs := make(map[string]uint)
	productIDs := make(map[string]uint)
	customerIDs := make(map[string]uint)

	for i, row := range rows {
		if len(row) < 10 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		address := strings.TrimSpace(row[1])
		phone := strings.TrimSpace(row[2])
		courseName := strings.TrimSpace(row[3])
		position, _ := strconv.Atoi(strings.TrimSpace(row[4]))
		productName := strings.TrimSpace(row[5])
		weekdays := strings.TrimSpace(row[6])
		quantity, _ := strconv.Atoi(strings.TrimSpace(row[7]))
		unitPrice, _ := strconv.ParseFloat(strings.TrimSpace(row[8]), 64)
		startDate, dateErr := time.Parse("2006-01-02", strings.TrimSpace(row[9]))

		if name == "" || courseName == "" || productName == "" || dateErr != nil {
			fmt.Printf("Row %d skipped: missing required fields\n", i+2)
			skipped++
			continue
		}

		courseID, ok := courseIDs[courseName]
		if !ok {
			var course model.Course
			if err := gdb.Where("name = ?", courseName).
				FirstOrCreate(&course, model.Course{Name: courseName}).Error; err != nil {
				fmt.Printf("Row %d skipped: course error: %v\n", i+2, err)
				skipped++
				continue
			}
			courseID = course.ID
			courseIDs[courseName] = courseID
		}

		productID, ok := productIDs[productName]
		if !ok {
			var product model.Product
			if err := gdb.Where("name = ?", productName).
				FirstOrCreate(&product, model.Product{Name: productName, UnitPrice: unitPrice}).Error; err != nil {
				fmt.Printf("Row %d skipped: product error: %v\n", i+2, err)
				skipped++
				continue
			}
			productID = product.ID
			productIDs[productName] = productID
		}

		customerKey := courseName + "/" + name
		customerID, ok := customerIDs[customerKey]
		if !ok {
			customer := model.Customer{
				Name:     name,
				Address:  address,
				Phone:    phone,
				CourseID: courseID,
				Position: position,
			}
			if err := gdb.Create(&customer).Error; err != nil {
				fmt.Printf("Row %d skipped: customer error: %v\n", i+2, err)
				skipped++
				continue
			}
			customerID = customer.ID
			customerIDs[customerKey] = customerID
		}

		pattern := model.DeliveryPattern{
			CustomerID: customerID,
			ProductID:  productID,
			Weekdays:   weekdays,
			Quantity:   quantity,
			UnitPrice:  unitPrice,
			StartDate:  startDate,
			Active:     true,
		}
		if err := gdb.Create(&pattern).Error; err != nil {
			fmt.Printf("Row %d skipped: pattern error: %v\n", i+2, err)
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped
}

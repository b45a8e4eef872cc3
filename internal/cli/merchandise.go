package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cantina/adminctl/usecase/merchandise"
)

func newMerchandiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "merchandise",
		Aliases: []string{"merch"},
		Short:   "Manage the product catalog",
	}
	cmd.AddCommand(
		newMerchListCmd(),
		newMerchGetCmd(),
		newMerchCreateCmd(),
		newMerchUpdateCmd(),
		newMerchDeleteCmd(),
	)
	return cmd
}

func newMerchListCmd() *cobra.Command {
	var (
		flagPage     int
		flagLimit    int
		flagSearch   string
		flagCategory string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "merchandise"); err != nil {
				return err
			}

			uc := merchandise.New(api, mutations, zlog)
			result, err := uc.List(ctx, merchandise.ListParams{
				Page:     flagPage,
				Limit:    flagLimit,
				Search:   flagSearch,
				Category: flagCategory,
			})
			if err != nil {
				return err
			}

			for _, product := range result.Products {
				availability := "unavailable"
				if product.AvailableForPurchase {
					availability = "available"
				}
				fmt.Printf("%s  %-30s  %8.2f  stock %3d  %s\n",
					product.ID, product.Name, product.Price, product.StockQuantity, availability)
			}
			if result.Stats.TotalItems > 0 {
				fmt.Printf("Inventory: %d items, %d available, value %.2f\n",
					result.Stats.TotalItems, result.Stats.Available, result.Stats.InventoryValue)
			}
			printPagination(result.Pagination)
			return nil
		},
	}

	cmd.Flags().IntVar(&flagPage, "page", 0, "Page number")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Page size")
	cmd.Flags().StringVar(&flagSearch, "search", "", "Search term")
	cmd.Flags().StringVar(&flagCategory, "category", "", "Category filter")
	return cmd
}

func newMerchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <product_id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "merchandise"); err != nil {
				return err
			}

			uc := merchandise.New(api, mutations, zlog)
			product, err := uc.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ID:       %s\n", product.ID)
			fmt.Printf("Name:     %s\n", product.Name)
			fmt.Printf("Price:    %.2f\n", product.Price)
			fmt.Printf("Category: %s\n", product.Category)
			fmt.Printf("Stock:    %d\n", product.StockQuantity)
			if len(product.Sizes) > 0 {
				fmt.Printf("Sizes:    %v\n", product.Sizes)
			}
			if len(product.Images) > 0 {
				fmt.Printf("Images:   %d\n", len(product.Images))
			}
			return nil
		},
	}
}

func newMerchCreateCmd() *cobra.Command {
	var (
		params     merchandise.ProductParams
		flagImages []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "merchandise"); err != nil {
				return err
			}

			images, err := readImages(flagImages)
			if err != nil {
				return err
			}
			params.Images = images

			uc := merchandise.New(api, mutations, zlog)
			product, err := uc.Create(ctx, params)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%s)\n", product.ID, product.Name)
			return nil
		},
	}

	addProductFlags(cmd, &params, &flagImages)
	return cmd
}

func newMerchUpdateCmd() *cobra.Command {
	var (
		params     merchandise.ProductParams
		flagImages []string
	)

	cmd := &cobra.Command{
		Use:   "update <product_id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "merchandise"); err != nil {
				return err
			}

			images, err := readImages(flagImages)
			if err != nil {
				return err
			}
			params.ProductID = args[0]
			params.Images = images

			uc := merchandise.New(api, mutations, zlog)
			product, err := uc.Update(ctx, params)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%s)\n", product.ID, product.Name)
			return nil
		},
	}

	addProductFlags(cmd, &params, &flagImages)
	cmd.Flags().StringSliceVar(&params.ExistingImages, "keep-image", nil, "Existing image URL to keep (repeatable)")
	return cmd
}

func newMerchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product_id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "merchandise"); err != nil {
				return err
			}

			uc := merchandise.New(api, mutations, zlog)
			if err := uc.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}
}

func addProductFlags(cmd *cobra.Command, params *merchandise.ProductParams, images *[]string) {
	cmd.Flags().StringVar(&params.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&params.Description, "description", "", "Product description")
	cmd.Flags().StringVar(&params.Price, "price", "", "Price")
	cmd.Flags().StringVar(&params.Category, "category", "", "Category")
	cmd.Flags().StringVar(&params.StockQuantity, "stock", "", "Stock quantity")
	cmd.Flags().StringSliceVar(&params.Sizes, "size", nil, "Size (repeatable)")
	cmd.Flags().StringSliceVar(&params.Colors, "color", nil, "Color (repeatable)")
	cmd.Flags().StringSliceVar(images, "image", nil, "Image file to upload (repeatable)")
}

func readImages(paths []string) ([]merchandise.Image, error) {
	images := make([]merchandise.Image, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read image %s: %w", path, err)
		}
		images = append(images, merchandise.Image{
			Filename: filepath.Base(path),
			Data:     data,
		})
	}
	return images, nil
}

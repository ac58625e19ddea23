package queries

import "fmt"

// Paramètres communs aux trois requêtes de lignes (NULL = pas de restriction) :
// $1 = date_debut (date), $2 = date_fin (date), $3 = montant_min (texte numérique),
// $4 = montant_max (texte numérique, montant NULL comparé comme 0), $5 = num_pec exact, $6 = motif ILIKE échappé,
// $7 = ids structures exécutantes (text[], vide = toutes)
const lineFilters = `
		WHERE ($1::date IS NULL OR %[1]s::date >= $1::date)
		  AND ($2::date IS NULL OR %[1]s::date <= $2::date)
		  AND ($3::text IS NULL OR COALESCE(%[2]s, 0) >= $3::text::numeric)
		  AND ($4::text IS NULL OR COALESCE(%[2]s, 0) <= $4::text::numeric)
		  AND ($5::text IS NULL OR at.num_pec::text = $5::text)
		  AND ($6::text IS NULL OR at.num_pec::text ILIKE $6::text ESCAPE '\')
		  AND (COALESCE(cardinality($7::text[]), 0) = 0 OR at.id_structure_executante::text = ANY($7::text[]))
`

func lineFiltersFor(dateColumn, amountColumn string) string {
	return fmt.Sprintf(lineFilters, dateColumn, amountColumn)
}

// ClaimsQueries regroupe toutes les requêtes SQL pour le core-service claims
var ClaimsQueries = struct {
	ActeLines        string
	RubriqueLines    string
	PharmacieLines   string
	ClaimTotals      string
	Beneficiaries    string
	ClaimHeaders     string
	ActiveStructures string
	CountClaimsToday string
}{
	/**
	 * Lignes d'actes médicaux
	 * Paramètres: voir lineFilters
	 */
	ActeLines: `
		SELECT
			at.num_pec::text,
			at.id_structure_executante::text,
			s.nom_structure,
			at.num_trans::text,
			laa.id_acte::text,
			a.libelle_acte,
			laa.date_execution_acte,
			laa.montant_acte::text,
			laa.quantite::bigint
		FROM acte_trans at
		JOIN list_acte_acte_trans laa
			ON laa.id_acte_trans = at.id_acte_trans
		JOIN structure s
			ON s.id_structure = at.id_structure_executante
		LEFT JOIN acte a
			ON a.id_acte = laa.id_acte
	` + lineFiltersFor("laa.date_execution_acte", "laa.montant_acte"),

	/**
	 * Lignes de rubriques d'hospitalisation
	 * Paramètres: voir lineFilters
	 */
	RubriqueLines: `
		SELECT
			at.num_pec::text,
			at.id_structure_executante::text,
			s.nom_structure,
			at.num_trans::text,
			COALESCE(lrh.id_acte::text, lrh.id_rub_hospit::text),
			COALESCE(a2.libelle_acte, rh.libelle),
			lrh.date_execution_acte,
			lrh.montant::text,
			lrh.qte::bigint
		FROM acte_trans at
		JOIN list_rub_hosp_acte_trans lrh
			ON lrh.id_acte_trans = at.id_acte_trans
		JOIN structure s
			ON s.id_structure = at.id_structure_executante
		LEFT JOIN acte a2
			ON a2.id_acte = lrh.id_acte
		LEFT JOIN rubrique_hospitalisations rh
			ON rh.id = lrh.id_rub_hospit
	` + lineFiltersFor("lrh.date_execution_acte", "lrh.montant"),

	/**
	 * Lignes de pharmacie (médicaments délivrés)
	 * Paramètres: voir lineFilters
	 */
	PharmacieLines: `
		SELECT
			at.num_pec::text,
			at.id_structure_executante::text,
			s.nom_structure,
			at.num_trans::text,
			lph.id_medicament::text,
			m.libelle_medicament,
			lph.date_execution_acte,
			lph.prix_unitaire::text,
			lph.qte::bigint
		FROM acte_trans at
		JOIN list_pharmacie_acte_trans lph
			ON lph.id_acte_trans = at.id_acte_trans
		JOIN structure s
			ON s.id_structure = at.id_structure_executante
		LEFT JOIN medicament m
			ON m.id_medicament = lph.id_medicament
	` + lineFiltersFor("lph.date_execution_acte", "lph.prix_unitaire"),

	/**
	 * Total cumulé par num_pec, toutes sources, sans filtre de date ni de montant
	 * Paramètres: $1 = num_pec (text[])
	 */
	ClaimTotals: `
		WITH lignes AS (
			SELECT
				at.num_pec::text AS num_pec,
				COALESCE(laa.montant_acte, 0) * COALESCE(laa.quantite, 1) AS montant_total
			FROM acte_trans at
			JOIN list_acte_acte_trans laa ON laa.id_acte_trans = at.id_acte_trans
			WHERE at.num_pec::text = ANY($1::text[])

			UNION ALL

			SELECT
				at.num_pec::text,
				COALESCE(lrh.montant, 0) * COALESCE(lrh.qte, 1)
			FROM acte_trans at
			JOIN list_rub_hosp_acte_trans lrh ON lrh.id_acte_trans = at.id_acte_trans
			WHERE at.num_pec::text = ANY($1::text[])

			UNION ALL

			SELECT
				at.num_pec::text,
				COALESCE(lph.prix_unitaire, 0) * COALESCE(lph.qte, 1)
			FROM acte_trans at
			JOIN list_pharmacie_acte_trans lph ON lph.id_acte_trans = at.id_acte_trans
			WHERE at.num_pec::text = ANY($1::text[])
		)
		SELECT
			num_pec,
			COALESCE(SUM(montant_total), 0)::text
		FROM lignes
		GROUP BY num_pec
	`,

	/**
	 * Bénéficiaires des transactions
	 * Paramètres: $1 = num_trans (text[])
	 */
	Beneficiaries: `
		SELECT
			tr.num_trans::text,
			tr.num_bnf::text,
			tr.nom_prenom,
			tr.telephone::text,
			tr.sexe::text,
			tr.date_naissance,
			tt.libelle_type_trans
		FROM "transaction" tr
		LEFT JOIN type_transactions tt
			ON tt.id_type_trans = tr.id_type_trans
		WHERE tr.num_trans::text = ANY($1::text[])
	`,

	/**
	 * Entêtes des PEC éligibles à l'état synthétique, un par num_pec
	 * (premier acte_trans par date de début puis id)
	 * Paramètres: $1 = date_debut, $2 = date_fin
	 */
	ClaimHeaders: `
		SELECT DISTINCT ON (at.num_pec)
			at.num_pec::text,
			at.num_trans::text,
			tp.libelle_type_prestation,
			(
				SELECT eq.libelle_etat_qualificatif
				FROM list_acte_acte_trans laat
				JOIN etat_qualificatif eq
					ON eq.id_etat_qualificatif = laat.id_etat_qualificatif
				WHERE laat.id_acte_trans = at.id_acte_trans
				ORDER BY eq.libelle_etat_qualificatif
				LIMIT 1
			),
			si.nom_structure,
			sp.nom_structure,
			s.nom_structure,
			so.nom_structure,
			NULLIF(TRIM(CONCAT_WS(' ', pi.nom_personnel, pi.prenoms_personnel)), ''),
			pi.tel::text,
			NULLIF(TRIM(CONCAT_WS(' ', pe.nom_personnel, pe.prenoms_personnel)), ''),
			pe.tel::text,
			at.date_dmd_acte_trans,
			at.date_debut_execution,
			at.date_fin_execution,
			at.date_accuser_reception,
			at.cle_validation::text,
			at.nombre_jour_hospitalisation::bigint,
			tr.num_bnf::text,
			tr.nom_prenom,
			tr.date_naissance,
			tr.telephone::text,
			tr.sexe::text
		FROM acte_trans at
		JOIN structure s
			ON s.id_structure = at.id_structure_executante
		LEFT JOIN structure si
			ON si.id_structure = at.id_structure_initiatrice
		LEFT JOIN structure sp
			ON sp.id_structure = at.id_structure_propose
		LEFT JOIN structure so
			ON so.id_structure = at.id_structure_origine_bulletin
		LEFT JOIN personnel pi
			ON pi.id_personnel = at.id_ps_initiateur
		LEFT JOIN personnel pe
			ON pe.id_personnel = at.id_ps_executant
		LEFT JOIN type_prestation tp
			ON tp.id_type_prest = at.id_type_prest
		LEFT JOIN "transaction" tr
			ON tr.num_trans = at.num_trans
		WHERE at.date_debut_execution::date BETWEEN $1::date AND $2::date
		  AND at.deleted_at IS NULL
		ORDER BY at.num_pec, at.date_debut_execution, at.id_acte_trans
	`,

	/**
	 * Structures actives pour le formulaire de filtres
	 */
	ActiveStructures: `
		SELECT DISTINCT
			id_structure::text,
			nom_structure
		FROM structure
		WHERE structure_active = 1
		  AND deleted_at IS NULL
		ORDER BY nom_structure
	`,

	/**
	 * Nombre de PEC dont l'exécution démarre aujourd'hui
	 */
	CountClaimsToday: `
		SELECT COUNT(DISTINCT num_pec)
		FROM acte_trans
		WHERE date_debut_execution::date = CURRENT_DATE
		  AND deleted_at IS NULL
	`,
}
